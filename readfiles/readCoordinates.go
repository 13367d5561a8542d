package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/panelflow/types"
)

// ReadCoordinatesFile loads an airfoil contour in the common "Selig" layout:
// one header line followed by whitespace-delimited x, y rows.
func ReadCoordinatesFile(filename string) (loop types.Loop, header string, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()
	if loop, header, err = ReadCoordinates(file); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
		return
	}
	log.WithFields(log.Fields{
		"file":   filename,
		"header": header,
		"points": loop.Len(),
	}).Debug("read coordinate file")
	return
}

// ReadCoordinates reads the header and coordinate rows, then closes the loop.
// Rows with fewer than two numeric fields fail with a *types.FormatError,
// fields beyond the second are ignored. When the first and last points differ
// by more than types.ClosureTolerance the first point is appended.
func ReadCoordinates(r io.Reader) (loop types.Loop, header string, err error) {
	var (
		reader = bufio.NewReader(r)
		line   string
		lineNo int
		X, Y   []float64
		eof    bool
	)
	for !eof {
		if line, eof, err = getLineEOF(reader); err != nil {
			return
		}
		if eof && len(line) == 0 {
			break
		}
		lineNo++
		if lineNo == 1 {
			header = strings.TrimSpace(line)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		var x, y float64
		if x, y, err = parsePair(line, lineNo); err != nil {
			return
		}
		X = append(X, x)
		Y = append(Y, y)
	}
	if loop, err = types.NewLoop(X, Y).Close(types.ClosureTolerance); err != nil {
		return
	}
	return
}

func parsePair(line string, lineNo int) (x, y float64, err error) {
	var (
		fields = strings.Fields(line)
	)
	if len(fields) < 2 {
		err = &types.FormatError{Line: lineNo, Text: line,
			Err: fmt.Errorf("found %d fields, need 2", len(fields))}
		return
	}
	if x, err = strconv.ParseFloat(fields[0], 64); err != nil {
		err = &types.FormatError{Line: lineNo, Text: line, Err: err}
		return
	}
	if y, err = strconv.ParseFloat(fields[1], 64); err != nil {
		err = &types.FormatError{Line: lineNo, Text: line, Err: err}
		return
	}
	return
}

// getLineEOF returns the next line without its line terminator. The final
// line of a file need not end in a newline.
func getLineEOF(reader *bufio.Reader) (line string, eof bool, err error) {
	line, err = reader.ReadString('\n')
	if err == io.EOF {
		eof, err = true, nil
	}
	line = strings.TrimRight(line, "\r\n")
	return
}
