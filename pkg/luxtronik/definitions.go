package luxtronik

import "strconv"

// Known slots of the three groups. Slots not listed here are still read and
// exposed as Unknown_<Group>_<index>.

var heatingModeLabels = map[int32]string{
	0: "Automatic",
	1: "Second heatsource",
	2: "Party",
	3: "Holidays",
	4: "Off",
}

var coolingModeLabels = map[int32]string{
	0: "Off",
	1: "Automatic",
}

var operationModeLabels = map[int32]string{
	0: "heating",
	1: "hot water",
	2: "swimming pool/solar",
	3: "evu",
	4: "defrost",
	5: "no request",
	6: "heating external source",
	7: "cooling",
}

var bivalenceLevelLabels = map[int32]string{
	1: "one compressor allowed to run",
	2: "two compressors allowed to run",
	3: "additional heat generator allowed to run",
}

var mainMenuStatusLine1Labels = map[int32]string{
	0: "heatpump running",
	1: "heatpump idle",
	2: "heatpump coming",
	3: "errorcode slot 0",
	4: "defrost",
	5: "waiting on LIN connection",
	6: "compressor heating up",
	7: "pump forerun",
}

var mainMenuStatusLine2Labels = map[int32]string{
	0: "since",
	1: "in",
}

var mainMenuStatusLine3Labels = map[int32]string{
	0:  "heating",
	1:  "no request",
	2:  "grid switch on delay",
	3:  "cycle lock",
	4:  "lock time",
	5:  "domestic water",
	6:  "info bake out program",
	7:  "defrost",
	8:  "pump forerun",
	9:  "thermal desinfection",
	10: "cooling",
	12: "swimming pool/solar",
	13: "heating external energy source",
	14: "domestic water external energy source",
	16: "flow monitoring",
	17: "second heat generator 1 active",
}

var heatpumpTypeLabels = map[int32]string{
	0:  "ERC",
	1:  "SW1",
	2:  "SW2",
	3:  "WW1",
	4:  "WW2",
	5:  "L1I",
	6:  "L2I",
	7:  "L1A",
	8:  "L2A",
	9:  "KSW",
	10: "KLW",
	11: "SWC",
	12: "LWC",
	13: "L2G",
	14: "WZS",
	15: "L1I407",
	16: "L2I407",
	17: "L1A407",
	18: "L2A407",
	19: "L2G407",
	20: "LWC407",
	21: "L1AREV",
	22: "L2AREV",
	23: "WWC1",
	24: "WWC2",
	25: "L2G404",
	26: "WZW",
	27: "L1S",
	28: "L1H",
	29: "L2H",
	30: "WZWD",
}

var parameterDefinitions = map[int]Definition{
	0:   {Name: "ID_Transfert_LuxNet", Type: MeasurementUnknown},
	1:   {Name: "ID_Einst_WK_akt", Type: MeasurementCelsius, Writeable: true},
	2:   {Name: "ID_Einst_BWS_akt", Type: MeasurementCelsius, Writeable: true},
	3:   {Name: "ID_Ba_Hz_akt", Type: MeasurementSelection, Writeable: true, Labels: heatingModeLabels},
	4:   {Name: "ID_Ba_Bw_akt", Type: MeasurementSelection, Writeable: true, Labels: heatingModeLabels},
	105: {Name: "ID_Soll_BWS_akt", Type: MeasurementCelsius, Writeable: true},
	108: {Name: "ID_Einst_BA_Kuehl_akt", Type: MeasurementSelection, Writeable: true, Labels: coolingModeLabels},
	110: {Name: "ID_Einst_KuehlFreig_akt", Type: MeasurementCelsius, Writeable: true},
	699: {Name: "ID_Einst_Heizgrenze", Type: MeasurementBoolean, Writeable: true},
	700: {Name: "ID_Einst_Heizgrenze_Temp", Type: MeasurementCelsius, Writeable: true},
}

var calculationDefinitions = map[int]Definition{
	10:  {Name: "ID_WEB_Temperatur_TVL", Type: MeasurementCelsius},
	11:  {Name: "ID_WEB_Temperatur_TRL", Type: MeasurementCelsius},
	12:  {Name: "ID_WEB_Sollwert_TRL_HZ", Type: MeasurementCelsius},
	13:  {Name: "ID_WEB_Temperatur_TRL_ext", Type: MeasurementCelsius},
	14:  {Name: "ID_WEB_Temperatur_THG", Type: MeasurementCelsius},
	15:  {Name: "ID_WEB_Temperatur_TA", Type: MeasurementCelsius},
	16:  {Name: "ID_WEB_Mitteltemperatur", Type: MeasurementCelsius},
	17:  {Name: "ID_WEB_Temperatur_TBW", Type: MeasurementCelsius},
	18:  {Name: "ID_WEB_Einst_BWS_akt", Type: MeasurementCelsius},
	19:  {Name: "ID_WEB_Temperatur_TWE", Type: MeasurementCelsius},
	20:  {Name: "ID_WEB_Temperatur_TWA", Type: MeasurementCelsius},
	21:  {Name: "ID_WEB_Temperatur_TFB1", Type: MeasurementCelsius},
	22:  {Name: "ID_WEB_Sollwert_TVL_MK1", Type: MeasurementCelsius},
	23:  {Name: "ID_WEB_Temperatur_RFV", Type: MeasurementCelsius},
	24:  {Name: "ID_WEB_Temperatur_TFB2", Type: MeasurementCelsius},
	25:  {Name: "ID_WEB_Sollwert_TVL_MK2", Type: MeasurementCelsius},
	26:  {Name: "ID_WEB_Temperatur_TSK", Type: MeasurementCelsius},
	27:  {Name: "ID_WEB_Temperatur_TSS", Type: MeasurementCelsius},
	28:  {Name: "ID_WEB_Temperatur_TEE", Type: MeasurementCelsius},
	29:  {Name: "ID_WEB_ASDin", Type: MeasurementBoolean},
	30:  {Name: "ID_WEB_BWTin", Type: MeasurementBoolean},
	31:  {Name: "ID_WEB_EVUin", Type: MeasurementBoolean},
	32:  {Name: "ID_WEB_HDin", Type: MeasurementBoolean},
	33:  {Name: "ID_WEB_MOTin", Type: MeasurementBoolean},
	34:  {Name: "ID_WEB_NDin", Type: MeasurementBoolean},
	35:  {Name: "ID_WEB_PEXin", Type: MeasurementBoolean},
	36:  {Name: "ID_WEB_SWTin", Type: MeasurementBoolean},
	37:  {Name: "ID_WEB_AVout", Type: MeasurementBoolean},
	38:  {Name: "ID_WEB_BUPout", Type: MeasurementBoolean},
	39:  {Name: "ID_WEB_HUPout", Type: MeasurementBoolean},
	40:  {Name: "ID_WEB_MA1out", Type: MeasurementBoolean},
	41:  {Name: "ID_WEB_MZ1out", Type: MeasurementBoolean},
	42:  {Name: "ID_WEB_VENout", Type: MeasurementBoolean},
	43:  {Name: "ID_WEB_VBOout", Type: MeasurementBoolean},
	44:  {Name: "ID_WEB_VD1out", Type: MeasurementBoolean},
	45:  {Name: "ID_WEB_VD2out", Type: MeasurementBoolean},
	46:  {Name: "ID_WEB_ZIPout", Type: MeasurementBoolean},
	47:  {Name: "ID_WEB_ZUPout", Type: MeasurementBoolean},
	48:  {Name: "ID_WEB_ZW1out", Type: MeasurementBoolean},
	49:  {Name: "ID_WEB_ZW2SSTout", Type: MeasurementBoolean},
	50:  {Name: "ID_WEB_ZW3SSTout", Type: MeasurementBoolean},
	51:  {Name: "ID_WEB_FP2out", Type: MeasurementBoolean},
	52:  {Name: "ID_WEB_SLPout", Type: MeasurementBoolean},
	53:  {Name: "ID_WEB_SUPout", Type: MeasurementBoolean},
	54:  {Name: "ID_WEB_MZ2out", Type: MeasurementBoolean},
	55:  {Name: "ID_WEB_MA2out", Type: MeasurementBoolean},
	56:  {Name: "ID_WEB_Zaehler_BetrZeitVD1", Type: MeasurementSeconds},
	57:  {Name: "ID_WEB_Zaehler_BetrZeitImpVD1", Type: MeasurementPulses},
	58:  {Name: "ID_WEB_Zaehler_BetrZeitVD2", Type: MeasurementSeconds},
	59:  {Name: "ID_WEB_Zaehler_BetrZeitImpVD2", Type: MeasurementPulses},
	60:  {Name: "ID_WEB_Zaehler_BetrZeitZWE1", Type: MeasurementSeconds},
	61:  {Name: "ID_WEB_Zaehler_BetrZeitZWE2", Type: MeasurementSeconds},
	62:  {Name: "ID_WEB_Zaehler_BetrZeitZWE3", Type: MeasurementSeconds},
	63:  {Name: "ID_WEB_Zaehler_BetrZeitWP", Type: MeasurementSeconds},
	64:  {Name: "ID_WEB_Zaehler_BetrZeitHz", Type: MeasurementSeconds},
	65:  {Name: "ID_WEB_Zaehler_BetrZeitBW", Type: MeasurementSeconds},
	66:  {Name: "ID_WEB_Zaehler_BetrZeitKue", Type: MeasurementSeconds},
	67:  {Name: "ID_WEB_Time_WPein_akt", Type: MeasurementSeconds},
	68:  {Name: "ID_WEB_Time_ZWE1_akt", Type: MeasurementSeconds},
	69:  {Name: "ID_WEB_Time_ZWE2_akt", Type: MeasurementSeconds},
	70:  {Name: "ID_WEB_Timer_EinschVerz", Type: MeasurementSeconds},
	71:  {Name: "ID_WEB_Time_SSPAUS_akt", Type: MeasurementSeconds},
	72:  {Name: "ID_WEB_Time_SSPEIN_akt", Type: MeasurementSeconds},
	73:  {Name: "ID_WEB_Time_VDStd_akt", Type: MeasurementSeconds},
	74:  {Name: "ID_WEB_Time_HRM_akt", Type: MeasurementSeconds},
	75:  {Name: "ID_WEB_Time_HRW_akt", Type: MeasurementSeconds},
	76:  {Name: "ID_WEB_Time_LGS_akt", Type: MeasurementSeconds},
	77:  {Name: "ID_WEB_Time_SBW_akt", Type: MeasurementSeconds},
	78:  {Name: "ID_WEB_Code_WP_akt", Type: MeasurementSelection, Labels: heatpumpTypeLabels},
	79:  {Name: "ID_WEB_BIV_Stufe_akt", Type: MeasurementSelection, Labels: bivalenceLevelLabels},
	80:  {Name: "ID_WEB_WP_BZ_akt", Type: MeasurementSelection, Labels: operationModeLabels},
	81:  {Name: "ID_WEB_SoftStand", Type: MeasurementVersion, Words: 10},
	91:  {Name: "ID_WEB_AdresseIP_akt", Type: MeasurementIPAddress},
	92:  {Name: "ID_WEB_SubNetMask_akt", Type: MeasurementIPAddress},
	93:  {Name: "ID_WEB_Add_Broadcast", Type: MeasurementIPAddress},
	94:  {Name: "ID_WEB_Add_StdGateway", Type: MeasurementIPAddress},
	95:  {Name: "ID_WEB_ERROR_Time0", Type: MeasurementTimestamp},
	96:  {Name: "ID_WEB_ERROR_Time1", Type: MeasurementTimestamp},
	97:  {Name: "ID_WEB_ERROR_Time2", Type: MeasurementTimestamp},
	98:  {Name: "ID_WEB_ERROR_Time3", Type: MeasurementTimestamp},
	99:  {Name: "ID_WEB_ERROR_Time4", Type: MeasurementTimestamp},
	100: {Name: "ID_WEB_ERROR_Nr0", Type: MeasurementErrorCode},
	101: {Name: "ID_WEB_ERROR_Nr1", Type: MeasurementErrorCode},
	102: {Name: "ID_WEB_ERROR_Nr2", Type: MeasurementErrorCode},
	103: {Name: "ID_WEB_ERROR_Nr3", Type: MeasurementErrorCode},
	104: {Name: "ID_WEB_ERROR_Nr4", Type: MeasurementErrorCode},
	105: {Name: "ID_WEB_AnzahlFehlerInSpeicher", Type: MeasurementCount},
	111: {Name: "ID_WEB_Switchoff_file_Time0", Type: MeasurementTimestamp},
	112: {Name: "ID_WEB_Switchoff_file_Time1", Type: MeasurementTimestamp},
	113: {Name: "ID_WEB_Switchoff_file_Time2", Type: MeasurementTimestamp},
	114: {Name: "ID_WEB_Switchoff_file_Time3", Type: MeasurementTimestamp},
	115: {Name: "ID_WEB_Switchoff_file_Time4", Type: MeasurementTimestamp},
	116: {Name: "ID_WEB_Comfort_exists", Type: MeasurementBoolean},
	117: {Name: "ID_WEB_HauptMenuStatus_Zeile1", Type: MeasurementSelection, Labels: mainMenuStatusLine1Labels},
	118: {Name: "ID_WEB_HauptMenuStatus_Zeile2", Type: MeasurementSelection, Labels: mainMenuStatusLine2Labels},
	119: {Name: "ID_WEB_HauptMenuStatus_Zeile3", Type: MeasurementSelection, Labels: mainMenuStatusLine3Labels},
	120: {Name: "ID_WEB_HauptMenuStatus_Zeit", Type: MeasurementSeconds},
	121: {Name: "ID_WEB_HauptMenuAHP_Stufe", Type: MeasurementLevel},
	122: {Name: "ID_WEB_HauptMenuAHP_Temp", Type: MeasurementCelsius},
	123: {Name: "ID_WEB_HauptMenuAHP_Zeit", Type: MeasurementSeconds},
	124: {Name: "ID_WEB_SH_BWW", Type: MeasurementBoolean},
	125: {Name: "ID_WEB_SH_HZ", Type: MeasurementBoolean},
	126: {Name: "ID_WEB_SH_MK1", Type: MeasurementBoolean},
	127: {Name: "ID_WEB_SH_MK2", Type: MeasurementBoolean},
	134: {Name: "ID_WEB_AktuelleTimeStamp", Type: MeasurementTimestamp},
	135: {Name: "ID_WEB_SH_MK3", Type: MeasurementBoolean},
	136: {Name: "ID_WEB_Sollwert_TVL_MK3", Type: MeasurementCelsius},
	137: {Name: "ID_WEB_Temperatur_TFB3", Type: MeasurementCelsius},
	138: {Name: "ID_WEB_MZ3out", Type: MeasurementBoolean},
	139: {Name: "ID_WEB_MA3out", Type: MeasurementBoolean},
	140: {Name: "ID_WEB_FP3out", Type: MeasurementBoolean},
	141: {Name: "ID_WEB_Time_AbtIn", Type: MeasurementSeconds},
	142: {Name: "ID_WEB_Temperatur_RFV2", Type: MeasurementCelsius},
	143: {Name: "ID_WEB_Temperatur_RFV3", Type: MeasurementCelsius},
	144: {Name: "ID_WEB_SH_SW", Type: MeasurementBoolean},
	145: {Name: "ID_WEB_Zaehler_BetrZeitSW", Type: MeasurementSeconds},
	146: {Name: "ID_WEB_FreigabKuehl", Type: MeasurementBoolean},
	147: {Name: "ID_WEB_AnalogIn", Type: MeasurementVoltage},
	151: {Name: "ID_WEB_WMZ_Heizung", Type: MeasurementEnergy},
	152: {Name: "ID_WEB_WMZ_Brauchwasser", Type: MeasurementEnergy},
	153: {Name: "ID_WEB_WMZ_Schwimmbad", Type: MeasurementEnergy},
	154: {Name: "ID_WEB_WMZ_Seit", Type: MeasurementEnergy},
	155: {Name: "ID_WEB_WMZ_Durchfluss", Type: MeasurementFlow},
	156: {Name: "ID_WEB_AnalogOut1", Type: MeasurementVoltage},
	157: {Name: "ID_WEB_AnalogOut2", Type: MeasurementVoltage},
	158: {Name: "ID_WEB_Time_Heissgas", Type: MeasurementSeconds},
	159: {Name: "ID_WEB_Temp_Lueftung_Zuluft", Type: MeasurementCelsius},
	160: {Name: "ID_WEB_Temp_Lueftung_Abluft", Type: MeasurementCelsius},
}

var visibilityDefinitions = map[int]Definition{
	0:  {Name: "ID_Visi_NieAnzeigen", Type: MeasurementBoolean},
	1:  {Name: "ID_Visi_ImmerAnzeigen", Type: MeasurementBoolean},
	2:  {Name: "ID_Visi_Heizung", Type: MeasurementBoolean},
	3:  {Name: "ID_Visi_Brauwasser", Type: MeasurementBoolean},
	4:  {Name: "ID_Visi_Schwimmbad", Type: MeasurementBoolean},
	5:  {Name: "ID_Visi_Kuhlung", Type: MeasurementBoolean},
	6:  {Name: "ID_Visi_Lueftung", Type: MeasurementBoolean},
	7:  {Name: "ID_Visi_MK1", Type: MeasurementBoolean},
	8:  {Name: "ID_Visi_MK2", Type: MeasurementBoolean},
	9:  {Name: "ID_Visi_ThermDesinfekt", Type: MeasurementBoolean},
	10: {Name: "ID_Visi_Zirkulation", Type: MeasurementBoolean},
}

func definitionsFor(group string) map[int]Definition {
	switch group {
	case GROUP_PARAMETERS:
		return parameterDefinitions
	case GROUP_CALCULATIONS:
		return calculationDefinitions
	case GROUP_VISIBILITIES:
		return visibilityDefinitions
	default:
		return nil
	}
}

const (
	CALC_HEATPUMP_TYPE    = 78
	CALC_FIRMWARE_VERSION = 81
	CALC_IP_ADDRESS       = 91
)

func infoFromCalculations(calcs *Group) *HeatpumpInfo {
	info := &HeatpumpInfo{}
	if attr, ok := calcs.Get(strconv.Itoa(CALC_HEATPUMP_TYPE)); ok {
		info.HeatpumpType, _ = attr.Value.(string)
	}
	if attr, ok := calcs.Get(strconv.Itoa(CALC_FIRMWARE_VERSION)); ok {
		info.FirmwareVersion, _ = attr.Value.(string)
	}
	if attr, ok := calcs.Get(strconv.Itoa(CALC_IP_ADDRESS)); ok {
		info.IPAddress, _ = attr.Value.(string)
	}
	return info
}
