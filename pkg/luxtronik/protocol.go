package luxtronik

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	CMD_WRITE_PARAMETER   int32 = 3002
	CMD_READ_PARAMETERS   int32 = 3003
	CMD_READ_CALCULATIONS int32 = 3004
	CMD_READ_VISIBILITIES int32 = 3005

	// upper bound for announced group lengths, guards against garbage frames
	MAX_GROUP_LENGTH = 4096
)

func writeWords(w io.Writer, words ...int32) error {
	return binary.Write(w, binary.BigEndian, words)
}

func readWord(r io.Reader) (int32, error) {
	var word int32
	if err := binary.Read(r, binary.BigEndian, &word); err != nil {
		return 0, err
	}
	return word, nil
}

func readWords(r io.Reader, n int32) ([]int32, error) {
	words := make([]int32, n)
	if err := binary.Read(r, binary.BigEndian, words); err != nil {
		return nil, err
	}
	return words, nil
}

func readBytes(r io.Reader, n int32) ([]int32, error) {
	raw := make([]int8, n)
	if err := binary.Read(r, binary.BigEndian, raw); err != nil {
		return nil, err
	}
	words := make([]int32, n)
	for i := range raw {
		words[i] = int32(raw[i])
	}
	return words, nil
}

func expectCommand(r io.Reader, cmd int32) error {
	echo, err := readWord(r)
	if err != nil {
		return err
	}
	if echo != cmd {
		return fmt.Errorf("%w: expected command %d, got %d", ErrProtocol, cmd, echo)
	}
	return nil
}

func readLength(r io.Reader) (int32, error) {
	length, err := readWord(r)
	if err != nil {
		return 0, err
	}
	if length < 0 || length > MAX_GROUP_LENGTH {
		return 0, fmt.Errorf("%w: invalid length %d", ErrProtocol, length)
	}
	return length, nil
}

func readParameters(rw io.ReadWriter) ([]int32, error) {
	if err := writeWords(rw, CMD_READ_PARAMETERS, 0); err != nil {
		return nil, err
	}
	if err := expectCommand(rw, CMD_READ_PARAMETERS); err != nil {
		return nil, err
	}
	length, err := readLength(rw)
	if err != nil {
		return nil, err
	}
	return readWords(rw, length)
}

func readCalculations(rw io.ReadWriter) ([]int32, error) {
	if err := writeWords(rw, CMD_READ_CALCULATIONS, 0); err != nil {
		return nil, err
	}
	if err := expectCommand(rw, CMD_READ_CALCULATIONS); err != nil {
		return nil, err
	}
	// controller status word, unused
	if _, err := readWord(rw); err != nil {
		return nil, err
	}
	length, err := readLength(rw)
	if err != nil {
		return nil, err
	}
	return readWords(rw, length)
}

func readVisibilities(rw io.ReadWriter) ([]int32, error) {
	if err := writeWords(rw, CMD_READ_VISIBILITIES, 0); err != nil {
		return nil, err
	}
	if err := expectCommand(rw, CMD_READ_VISIBILITIES); err != nil {
		return nil, err
	}
	length, err := readLength(rw)
	if err != nil {
		return nil, err
	}
	return readBytes(rw, length)
}

func writeParameter(rw io.ReadWriter, index int32, value int32) error {
	if err := writeWords(rw, CMD_WRITE_PARAMETER, index, value); err != nil {
		return err
	}
	if err := expectCommand(rw, CMD_WRITE_PARAMETER); err != nil {
		return err
	}
	echo, err := readWord(rw)
	if err != nil {
		return err
	}
	if echo != index {
		return fmt.Errorf("%w: write of parameter %d acknowledged as %d", ErrProtocol, index, echo)
	}
	return nil
}
