package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Eyevinn/timecode-tools/internal"
	"github.com/stretchr/testify/require"
)

var expected_convert_output = `{"input":"00:00:01:00","rate":"25","dropFrame":false,"timecode":"00:00:01:00","frameNumber":25,"duration":"1s"}
{"input":"-1","rate":"25","dropFrame":false,"timecode":"23:59:59:24","frameNumber":2159999,"duration":"23h59m59.96s"}
`

func TestConvertFile(t *testing.T) {
	inFile := filepath.Join(t.TempDir(), "values.txt")
	require.NoError(t, os.WriteFile(inFile, []byte("# values\n00:00:01:00\n-1\n"), 0644))
	buf := bytes.Buffer{}
	err := internal.Execute(&buf, internal.Options{Rate: "25"}, inFile, internal.ConvertLines)
	require.NoError(t, err)
	require.Equal(t, expected_convert_output, buf.String(), "values.txt should produce expected output")
}

func TestConvertMissingFile(t *testing.T) {
	err := internal.Execute(&bytes.Buffer{}, internal.Options{Rate: "25"}, filepath.Join(t.TempDir(), "none.txt"), internal.ConvertLines)
	require.Error(t, err)
}
