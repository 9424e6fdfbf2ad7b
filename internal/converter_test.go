package internal

import (
	"bytes"
	"context"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/Eyevinn/timecode-tools/timecode"
	"github.com/stretchr/testify/require"
)

var (
	update = flag.Bool("update", false, "update the golden files of this test")
)

func TestConvertLines(t *testing.T) {
	cases := []struct {
		name                 string
		file                 string
		options              Options
		expected_output_file string
	}{
		{"2997", "testdata/convert_2997.txt", Options{Rate: "29.97"}, "testdata/golden_convert_2997.txt"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			buf := bytes.Buffer{}
			f, err := os.Open(c.file)
			require.NoError(t, err)
			defer f.Close()
			err = ConvertLines(context.TODO(), &buf, f, c.options)
			require.NoError(t, err)
			compareUpdateGolden(t, buf.String(), c.expected_output_file, *update)
		})
	}
}

func TestConvertLinesWithOffset(t *testing.T) {
	buf := bytes.Buffer{}
	in := strings.NewReader("10:00:00;00\n00:00:10;00\n")
	err := ConvertLines(context.TODO(), &buf, in, Options{Rate: "2997", AddFrames: 1000})
	require.NoError(t, err)
	compareUpdateGolden(t, buf.String(), "testdata/golden_convert_2997_offset.txt", *update)
}

func TestConvertLinesBadRate(t *testing.T) {
	err := ConvertLines(context.TODO(), &bytes.Buffer{}, strings.NewReader("0\n"), Options{Rate: "48"})
	require.Error(t, err)
}

func TestConvertLinesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ConvertLines(ctx, &bytes.Buffer{}, strings.NewReader("0\n"), Options{Rate: "25"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestConverter(t *testing.T) {
	cases := []struct {
		rate   string
		input  string
		offset int64
		want   string
		fn     uint32
	}{
		{"24", "00:23:30:15", 0, "00:23:30:15", 33855},
		{"30", "05:15:25:12", 0, "05:15:25:12", 567762},
		{"59.94", "00:23:30;15", 0, "00:23:30;15", 84531},
		{"25", "2160000", 0, "00:00:00:00", 0},
		{"25", "23:59:59:24", 1, "00:00:00:00", 0},
		{"23.98", "  00:00:01:00  ", -24, "00:00:00:00", 0},
		{"50", "-50", 0, "23:59:59:00", 4319950},
	}
	for _, c := range cases {
		t.Run(c.rate+"_"+c.input, func(t *testing.T) {
			conv, err := NewConverter(c.rate)
			require.NoError(t, err)
			got, err := conv.Convert(c.input, c.offset)
			require.NoError(t, err)
			require.Equal(t, c.want, got.Timecode)
			require.NotNil(t, got.FrameNumber)
			require.Equal(t, c.fn, *got.FrameNumber)
			require.Empty(t, got.Error)
		})
	}
}

func TestConverterErrors(t *testing.T) {
	conv, err := NewConverter("24")
	require.NoError(t, err)
	got, err := conv.Convert("00:00:00;00", 0)
	require.ErrorIs(t, err, timecode.ErrInvalidDropFrameFormat)
	require.Nil(t, got.FrameNumber)
	require.NotEmpty(t, got.Error)

	for _, r := range timecode.Rates() {
		conv, err := NewConverter(r.Name)
		require.NoError(t, err)
		require.Equal(t, r, conv.Rate())
	}
}

func getExpectedOutput(t *testing.T, file string) string {
	t.Helper()
	expected_output, err := os.ReadFile(file)
	require.NoError(t, err)
	expected_output_str := strings.ReplaceAll(string(expected_output), "\r\n", "\n")
	return expected_output_str
}

func compareUpdateGolden(t *testing.T, actual string, goldenFile string, update bool) {
	t.Helper()
	if update {
		err := os.WriteFile(goldenFile, []byte(actual), 0644)
		require.NoError(t, err)
	} else {
		expected := getExpectedOutput(t, goldenFile)
		require.Equal(t, expected, actual, "should produce expected output")
	}
}

// TestMain is to set flags for tests. In particular, the update flag to update golden files.
func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}
