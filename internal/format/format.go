// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format renders registry responses for the terminal.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pnum-lookup/internal/client"
	"github.com/pdiddy/pnum-lookup/pkg/types"
)

// Indent is the indentation used for every JSON document pls prints or saves.
const Indent = "    "

const (
	listAllHeader = "Following is a list of the amount of all personal numbers registered in the data set. \n\n" +
		"The list includes all personal numbers, valid personal numbers, invalid personal numbers\n" +
		"and the amount of men and women (given valid personal numbers):\n\n"

	listByGroupsHeader = "Following is a list of the amount of personal numbers registered in the data set.\n" +
		"The list is grouped by age groups of 10 years, and further by gender: \n\n"
)

// IndentJSON re-indents body without reordering keys.
func IndentJSON(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", Indent); err != nil {
		return nil, fmt.Errorf("parsing response body: %w", err)
	}
	return buf.Bytes(), nil
}

// Raw writes the indented JSON body framed by blank lines.
func Raw(w io.Writer, resp *client.Response) error {
	data, err := IndentJSON(resp.Body)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n%s\n\n", data)
	return err
}

// Pretty writes the response as English sentences. Listing actions get an
// explanatory header followed by the raw JSON.
func Pretty(w io.Writer, resp *client.Response) error {
	action := resp.Action()
	switch action {
	case types.ActionListAll:
		io.WriteString(w, listAllHeader)
		return Raw(w, resp)
	case types.ActionListByGroups:
		io.WriteString(w, listByGroupsHeader)
		return Raw(w, resp)
	}

	fields, err := resp.Fields()
	if err != nil {
		return err
	}

	pnum, err := field(fields, "pnum")
	if err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "The request treated personal number %s.\n", pnum)

	switch action {
	case types.ActionGender, types.ActionAge:
		v, err := field(fields, string(action))
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "The personal number is of %s '%s'.", action, v)

	case types.ActionIsValid:
		result, err := field(fields, "is valid pnum")
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "The personal number is%svalid.", negation(result))
		if result == "no" {
			reason, err := field(fields, "reason")
			if err != nil {
				return err
			}
			fmt.Fprintf(&b, "\nReason: %s", reason)
		}

	case types.ActionIsRegistered:
		result, err := field(fields, "is in dataset")
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "The personal number is%sregistered.", negation(result))
		valid, err := field(fields, "is valid pnum")
		if err != nil {
			return err
		}
		if valid == "no" {
			b.WriteString("\nNotice that the pnum provided is invalid.")
		}
	}

	_, err = fmt.Fprintf(w, "%s\n\n", b.String())
	return err
}

// Failure writes the diagnostic for a non-200 response.
func Failure(w io.Writer, resp *client.Response, verbose bool) {
	if !verbose {
		fmt.Fprintf(w, "Bad request %d\n", resp.StatusCode)
		return
	}
	fmt.Fprintf(w, "Unsuccessful request with status code %d\n", resp.StatusCode)
	fmt.Fprintln(w, "Error message: ")
	if msg, ok := resp.ErrorMessage(); ok {
		fmt.Fprintln(w, msg)
	}
}

func negation(result string) string {
	if result == "no" {
		return " not "
	}
	return " "
}

func field(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("response missing field %q", key)
	}
	return client.FieldString(v), nil
}
