package xlsxwriter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tr181tools/excelifier/internal/config"
	"github.com/tr181tools/excelifier/internal/types"
)

func sampleModel() types.ModelTable {
	return types.ModelTable{
		Name: "Device:2.15",
		Rows: []types.ParameterRow{
			{
				Path: "Device.WiFi.Channel", Type: "unsignedInt",
				Access: "readOnly", Version: "2.15",
				Description: "Current channel",
			},
			{
				Path: "Device.WiFi.SSID", Type: "string",
				Access: "readWrite", Syntax: "maxLength=32",
				Default: "HomeNet", Version: "2.15",
				Description: "Service set identifier",
			},
		},
	}
}

func sampleProfile() types.ProfileTable {
	return types.ProfileTable{
		Name: "Baseline:1",
		Rows: []types.ProfileRow{
			{Path: "Device.WiFi.", Requirement: "present"},
			{Path: "Device.WiFi.Channel", Requirement: "readOnly"},
		},
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	err := New(nil).Write(path, []types.ModelTable{sampleModel()}, []types.ProfileTable{sampleProfile()})
	require.NoError(t, err)

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{"Device_2.15", "Baseline_1"}, book.GetSheetList())

	rows, err := book.GetRows("Device_2.15")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, modelHeader, rows[0])

	assert.Equal(t, "Device.WiFi.Channel", rows[1][0])
	assert.Equal(t, "unsignedInt", rows[1][1])
	assert.Equal(t, "readOnly", rows[1][2])
	assert.Equal(t, "Current channel", rows[1][7])

	profileRows, err := book.GetRows("Baseline_1")
	require.NoError(t, err)
	require.Len(t, profileRows, 3)
	assert.Equal(t, profileHeader[:2], profileRows[0][:2])
	assert.Equal(t, "Device.WiFi.", profileRows[1][0])
	assert.Equal(t, "present", profileRows[1][1])
}

func TestWriteHeaderIsBold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, New(nil).Write(path, []types.ModelTable{sampleModel()}, nil))

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	styleID, err := book.GetCellStyle("Device_2.15", "A1")
	require.NoError(t, err)
	style, err := book.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestWriteEmptyInputKeepsPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, New(nil).Write(path, nil, nil))

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{"Sheet1"}, book.GetSheetList())
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, New(nil).Write(path, []types.ModelTable{sampleModel()}, nil))

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	book.Close()
}

func TestWriteUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	// The output "directory" is actually a file, so the temp file cannot
	// be created beneath it.
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	path := filepath.Join(blocker, "out.xlsx")
	err := New(nil).Write(path, []types.ModelTable{sampleModel()}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutputWrite)
}

func TestSheetNameSanitization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Device:2.15", "Device_2.15"},
		{"a/b\\c?d*e[f]g:h", "a_b_c_d_e_f_g_h"},
		{"", "Sheet"},
		{"   ", "Sheet"},
		{"NoChanges", "NoChanges"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, sanitizeSheetName(tc.in), "input %q", tc.in)
	}
}

func TestSheetNamerTruncation(t *testing.T) {
	n := newSheetNamer()
	long := "VeryLongModelName1234567890123456789"

	got := n.claim(long)
	assert.Len(t, []rune(got), 31)
	assert.Equal(t, long[:31], got)
}

func TestSheetNamerCollisionSuffix(t *testing.T) {
	n := newSheetNamer()
	long := "VeryLongModelName1234567890123456789"

	first := n.claim(long)
	second := n.claim(long)
	third := n.claim(long)

	assert.Equal(t, long[:31], first)
	assert.Equal(t, long[:29]+"_2", second)
	assert.Equal(t, long[:29]+"_3", third)
}

func TestSheetNamerReservesDefaultSheet(t *testing.T) {
	n := newSheetNamer()
	assert.Equal(t, "Sheet1_2", n.claim("Sheet1"))
}

func TestColumnWidthClamping(t *testing.T) {
	cfg := config.Default()
	cfg.MaxColumnWidth = 40

	model := sampleModel()
	model.Rows[0].Description = strings.Repeat("x", 300)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, New(cfg).Write(path, []types.ModelTable{model}, nil))

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	width, err := book.GetColWidth("Device_2.15", "H")
	require.NoError(t, err)
	assert.InDelta(t, 40, width, 0.01)

	// Longest cell in the Type column is "unsignedInt" (11) plus padding.
	narrow, err := book.GetColWidth("Device_2.15", "B")
	require.NoError(t, err)
	assert.InDelta(t, 13, narrow, 0.01)
}
