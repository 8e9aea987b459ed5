package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// COMMENT starts a comment in a program listing.
const COMMENT = "#"

// Listing is a single source line of a program listing: the bytes it
// encodes, and a descriptive comment.
type Listing struct {
	Data    []byte
	Comment string
}

// ReadProgram reads a program listing of one base-2 byte literal per line.
// Text from COMMENT onwards is ignored, as are lines that are not a valid
// byte literal.
func ReadProgram(input io.Reader) (data []byte, err error) {
	scanner := bufio.NewScanner(input)

	for scanner.Scan() {
		text, _, _ := strings.Cut(scanner.Text(), COMMENT)
		text = strings.TrimSpace(text)
		text = strings.TrimPrefix(strings.TrimPrefix(text, "0b"), "0B")
		if len(text) == 0 {
			continue
		}

		// Base prefix permits '_' digit separators.
		value, perr := strconv.ParseUint("0b"+text, 0, 8)
		if perr != nil {
			continue
		}

		data = append(data, byte(value))
	}

	err = scanner.Err()
	if err != nil {
		err = errors.Join(ErrProgramRead, err)
	}

	return
}

// WriteProgram writes a program listing readable by ReadProgram.
// The comment of each listing is placed after its first byte, or on a line
// of its own if the listing has no data.
func WriteProgram(output io.Writer, listings []Listing) (err error) {
	w := bufio.NewWriter(output)

	for _, listing := range listings {
		if len(listing.Data) == 0 {
			if len(listing.Comment) != 0 {
				_, err = fmt.Fprintf(w, "%s %s\n", COMMENT, listing.Comment)
			}
		}
		for n, data := range listing.Data {
			if n == 0 && len(listing.Comment) != 0 {
				_, err = fmt.Fprintf(w, "%08b %s %s\n", data, COMMENT, listing.Comment)
			} else {
				_, err = fmt.Fprintf(w, "%08b\n", data)
			}
			if err != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}

	err = w.Flush()
	return
}
