package helper

import (
	"fmt"
	"strings"
)

// method to format a pit stop time in seconds with millisecond precision
func PitTime(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.3fs", seconds)
}

// method to format a signed points gap between two drivers
func PointsDiff(diff float64) string {
	if diff > 0 {
		return fmt.Sprintf("+%g", diff)
	}
	return fmt.Sprintf("%g", diff)
}

func GetDriverCodeName(name string) string {
	// this function reads a name with possible surname and will return the first letter of the name and the first 3 letters of the surname
	// if the name is empty, it will return an empty string
	if name == "" {
		return ""
	}
	// split the name into words
	words := strings.Split(name, " ")
	// get the first letter of the first word
	code := string(words[0][0])
	// if there is a second word, get the first 2 letters of it
	if len(words) > 1 {
		if len(words[1]) > 2 {
			code += words[1][:2]
		} else {
			// if the second word is only 1 letter long, get the first 3 letters of the first word
			code += words[1]
		}
	} else {
		// if there is no second word, get the first 2 letters of the first word
		if len(words[0]) > 2 {
			code += words[0][1:3]
		} else {
			// if the first word is only 1 letter long, get the first 3 letters of the first word
			code += words[0]
		}
	}
	return strings.ToUpper(code)
}
