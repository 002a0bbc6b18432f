package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    ClockMinutes
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:07", 8*60 + 7, false},
		{"23:59", 23*60 + 59, false},
		{"24:00", 0, true},
		{"08:60", 0, true},
		{"8am", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseClock(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestClockMinutesString(t *testing.T) {
	assert.Equal(t, "08:09", ClockMinutes(8*60+9).String())
	assert.Equal(t, "00:05", ClockMinutes(5).String())
}

func TestDirectoryGetByID(t *testing.T) {
	dir := SeoulNetwork().Stations

	station, ok := dir.GetByID("150")
	require.True(t, ok)
	assert.Equal(t, "서울역", station.NameKo)
	assert.True(t, station.ServedBy("1"))
	assert.True(t, station.ServedBy("4"))

	_, ok = dir.GetByID("999")
	assert.False(t, ok)
}

func TestDirectoryGetByNameIsExact(t *testing.T) {
	dir := SeoulNetwork().Stations

	station, ok := dir.GetByName("강남역")
	require.True(t, ok)
	assert.Equal(t, "222", station.ID)

	// Substrings and unsuffixed names do not resolve.
	_, ok = dir.GetByName("강남")
	assert.False(t, ok)
	_, ok = dir.GetByName("gangnam")
	assert.False(t, ok)
}

func TestDirectoryGetByLine(t *testing.T) {
	dir := SeoulNetwork().Stations

	line9 := dir.GetByLine("9")
	ids := make([]string, len(line9))
	for i, s := range line9 {
		ids[i] = s.ID
	}
	assert.ElementsMatch(t, []string{"136", "329", "915"}, ids)

	assert.Empty(t, dir.GetByLine("42"))
}

func TestDirectoryTransferStations(t *testing.T) {
	dir := SeoulNetwork().Stations

	transfers := dir.TransferStations()
	require.NotEmpty(t, transfers)
	for _, s := range transfers {
		assert.True(t, s.IsTransfer, "station %s", s.ID)
	}

	// 잠실역 is single-line and must not appear.
	for _, s := range transfers {
		assert.NotEqual(t, "216", s.ID)
	}
}

func TestDirectorySearch(t *testing.T) {
	dir := SeoulNetwork().Stations

	results := dir.Search("서울")
	require.Len(t, results, 1)
	assert.Equal(t, "150", results[0].ID)

	// English matching is case-insensitive.
	results = dir.Search("GANGNAM")
	require.Len(t, results, 1)
	assert.Equal(t, "222", results[0].ID)

	assert.Empty(t, dir.Search("부산"))
}

func TestStationSharesLineWith(t *testing.T) {
	dir := SeoulNetwork().Stations

	seoul, _ := dir.GetByID("150")
	cityHall, _ := dir.GetByID("132")
	gangnam, _ := dir.GetByID("222")

	assert.True(t, seoul.SharesLineWith(cityHall)) // both on line 1
	assert.False(t, seoul.SharesLineWith(gangnam))
}
