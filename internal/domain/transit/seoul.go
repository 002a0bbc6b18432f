package transit

// Curated slice of the Seoul metropolitan subway used by the matching
// engine: major stations, sparse travel-time pairs between them, the
// express/special/ITX services that call at them, and per-line congestion
// profiles. Values are static estimates, not live data.

var (
	line1 = Line{ID: "1", Name: "1호선", Code: "L1", Color: "#0052A4", Type: LineTypeGeneral}
	line2 = Line{ID: "2", Name: "2호선", Code: "L2", Color: "#00A84D", Type: LineTypeGeneral}
	line3 = Line{ID: "3", Name: "3호선", Code: "L3", Color: "#EF7C1C", Type: LineTypeGeneral}
	line4 = Line{ID: "4", Name: "4호선", Code: "L4", Color: "#00A5DE", Type: LineTypeGeneral}
	line5 = Line{ID: "5", Name: "5호선", Code: "L5", Color: "#996CAC", Type: LineTypeGeneral}
	line7 = Line{ID: "7", Name: "7호선", Code: "L7", Color: "#747F00", Type: LineTypeGeneral}
	line9 = Line{ID: "9", Name: "9호선", Code: "L9", Color: "#BDB092", Type: LineTypeExpress}
	lineA = Line{ID: "A", Name: "공항철도", Code: "AREX", Color: "#0090D2", Type: LineTypeExpress}
	lineK = Line{ID: "K", Name: "경의중앙선", Code: "KJ", Color: "#77C4A3", Type: LineTypeGeneral}
	lineS = Line{ID: "S", Name: "신분당선", Code: "SB", Color: "#D4003B", Type: LineTypeSpecial}
)

var seoulStations = []Station{
	{ID: "150", NameKo: "서울역", NameEn: "Seoul Station", Lines: []Line{line1, line4, lineA, lineK}, Latitude: 37.5547, Longitude: 126.9707, IsTransfer: true},
	{ID: "132", NameKo: "시청역", NameEn: "City Hall", Lines: []Line{line1, line2}, Latitude: 37.5657, Longitude: 126.9769, IsTransfer: true},
	{ID: "130", NameKo: "종로3가역", NameEn: "Jongno 3-ga", Lines: []Line{line1, line3, line5}, Latitude: 37.5714, Longitude: 126.9916, IsTransfer: true},
	{ID: "124", NameKo: "청량리역", NameEn: "Cheongnyangni", Lines: []Line{line1, lineK}, Latitude: 37.5802, Longitude: 127.0469, IsTransfer: true, IsTerminus: true},
	{ID: "135", NameKo: "용산역", NameEn: "Yongsan", Lines: []Line{line1, lineK}, Latitude: 37.5299, Longitude: 126.9648, IsTransfer: true, IsTerminus: true},
	{ID: "136", NameKo: "노량진역", NameEn: "Noryangjin", Lines: []Line{line1, line9}, Latitude: 37.5142, Longitude: 126.9422, IsTransfer: true},
	{ID: "222", NameKo: "강남역", NameEn: "Gangnam", Lines: []Line{line2, lineS}, Latitude: 37.4979, Longitude: 127.0276, IsTransfer: true},
	{ID: "223", NameKo: "교대역", NameEn: "Seoul Nat'l Univ. of Education", Lines: []Line{line2, line3}, Latitude: 37.4934, Longitude: 127.0140, IsTransfer: true},
	{ID: "226", NameKo: "사당역", NameEn: "Sadang", Lines: []Line{line2, line4}, Latitude: 37.4766, Longitude: 126.9816, IsTransfer: true},
	{ID: "216", NameKo: "잠실역", NameEn: "Jamsil", Lines: []Line{line2}, Latitude: 37.5133, Longitude: 127.1001},
	{ID: "234", NameKo: "신도림역", NameEn: "Sindorim", Lines: []Line{line1, line2}, Latitude: 37.5088, Longitude: 126.8912, IsTransfer: true},
	{ID: "239", NameKo: "홍대입구역", NameEn: "Hongik Univ.", Lines: []Line{line2, lineA, lineK}, Latitude: 37.5571, Longitude: 126.9245, IsTransfer: true},
	{ID: "240", NameKo: "신촌역", NameEn: "Sinchon", Lines: []Line{line2}, Latitude: 37.5551, Longitude: 126.9368},
	{ID: "205", NameKo: "동대문역사문화공원역", NameEn: "Dongdaemun History & Culture Park", Lines: []Line{line2, line4, line5}, Latitude: 37.5654, Longitude: 127.0079, IsTransfer: true},
	{ID: "329", NameKo: "고속터미널역", NameEn: "Express Bus Terminal", Lines: []Line{line3, line7, line9}, Latitude: 37.5049, Longitude: 127.0049, IsTransfer: true},
	{ID: "915", NameKo: "여의도역", NameEn: "Yeouido", Lines: []Line{line5, line9}, Latitude: 37.5216, Longitude: 126.9243, IsTransfer: true},
}

// seoulTravelTimes is deliberately sparse and stored in one direction only;
// the table falls back to the reverse key on lookup.
var seoulTravelTimes = map[string]TravelTimeInfo{
	"150-132": {NormalTimeSec: 120, TransferCount: 0, WalkingDistanceM: 1100},
	"150-135": {NormalTimeSec: 240, TransferCount: 0, WalkingDistanceM: 2800},
	"150-222": {NormalTimeSec: 1560, TransferCount: 1, TransferStations: []string{"226"}, WalkingDistanceM: 9400},
	"150-239": {NormalTimeSec: 660, ExpressTimeSec: intPtr(480), TransferCount: 0, HasExpress: true, WalkingDistanceM: 4600},
	"132-205": {NormalTimeSec: 480, TransferCount: 0, WalkingDistanceM: 2900},
	"130-205": {NormalTimeSec: 300, TransferCount: 1, TransferStations: []string{"130"}, WalkingDistanceM: 1600},
	"135-124": {NormalTimeSec: 1080, TransferCount: 0, WalkingDistanceM: 9100},
	"135-136": {NormalTimeSec: 180, TransferCount: 0, WalkingDistanceM: 2400},
	"136-329": {NormalTimeSec: 720, ExpressTimeSec: intPtr(420), TransferCount: 0, HasExpress: true, WalkingDistanceM: 5700},
	"915-329": {NormalTimeSec: 600, ExpressTimeSec: intPtr(360), TransferCount: 0, HasExpress: true, WalkingDistanceM: 7300},
	"915-136": {NormalTimeSec: 240, TransferCount: 0, WalkingDistanceM: 1900},
	"222-223": {NormalTimeSec: 120, TransferCount: 0, WalkingDistanceM: 1300},
	"222-216": {NormalTimeSec: 480, TransferCount: 0, WalkingDistanceM: 7300},
	"223-329": {NormalTimeSec: 240, TransferCount: 0, WalkingDistanceM: 1200},
	"226-222": {NormalTimeSec: 420, TransferCount: 0, WalkingDistanceM: 4600},
	"205-226": {NormalTimeSec: 840, TransferCount: 0, WalkingDistanceM: 10300},
	"234-240": {NormalTimeSec: 360, TransferCount: 0, WalkingDistanceM: 4400},
	"239-240": {NormalTimeSec: 120, TransferCount: 0, WalkingDistanceM: 1200},
}

var seoulExpressSchedules = []ExpressTrainSchedule{
	{
		LineID:        "9",
		Type:          ServiceTypeExpress,
		OperatingDays: []int{1, 2, 3, 4, 5, 6, 7},
		FirstTrain:    "05:30",
		LastTrain:     "23:40",
		Intervals:     ExpressIntervals{MorningRushSec: 180, EveningRushSec: 240, DaytimeSec: 480, NightSec: 720},
		Stops:         []string{"915", "136", "329"},
		TimeSavings: map[string]int{
			"여의도-고속터미널": 240,
			"노량진-고속터미널": 300,
		},
	},
	{
		LineID:        "1",
		Type:          ServiceTypeExpress,
		OperatingDays: []int{1, 2, 3, 4, 5},
		FirstTrain:    "05:25",
		LastTrain:     "23:10",
		Intervals:     ExpressIntervals{MorningRushSec: 600, EveningRushSec: 720, DaytimeSec: 900, NightSec: 1200},
		Stops:         []string{"135", "136", "234"},
		TimeSavings: map[string]int{
			"용산-신도림": 180,
		},
	},
	{
		LineID:        "A",
		Type:          ServiceTypeSpecial,
		OperatingDays: []int{1, 2, 3, 4, 5, 6, 7},
		FirstTrain:    "05:20",
		LastTrain:     "22:50",
		Intervals:     ExpressIntervals{MorningRushSec: 2400, EveningRushSec: 2400, DaytimeSec: 2400, NightSec: 3600},
		Stops:         []string{"150", "239"},
		TimeSavings: map[string]int{
			"서울역-홍대입구": 180,
		},
	},
	{
		LineID:        "K",
		Type:          ServiceTypeITX,
		OperatingDays: []int{1, 2, 3, 4, 5, 6, 7},
		FirstTrain:    "06:00",
		LastTrain:     "22:00",
		Intervals:     ExpressIntervals{MorningRushSec: 3600, EveningRushSec: 3600, DaytimeSec: 3600, NightSec: 5400},
		Stops:         []string{"135", "124"},
		TimeSavings: map[string]int{
			"용산-청량리": 420,
		},
	},
}

var seoulCongestion = []CongestionData{
	{LineID: "1", Levels: CongestionLevels{EarlyMorning: 3, MorningRush: 8, Morning: 5, Lunch: 4, Afternoon: 5, EveningRush: 8, Night: 4}},
	{LineID: "2", Levels: CongestionLevels{EarlyMorning: 4, MorningRush: 9, Morning: 6, Lunch: 5, Afternoon: 6, EveningRush: 9, Night: 5},
		SectionOverrides: map[string]int{"234-240": 10}},
	{LineID: "3", Levels: CongestionLevels{EarlyMorning: 3, MorningRush: 7, Morning: 5, Lunch: 4, Afternoon: 5, EveningRush: 7, Night: 4}},
	{LineID: "4", Levels: CongestionLevels{EarlyMorning: 3, MorningRush: 8, Morning: 5, Lunch: 4, Afternoon: 5, EveningRush: 8, Night: 4}},
	{LineID: "5", Levels: CongestionLevels{EarlyMorning: 3, MorningRush: 7, Morning: 5, Lunch: 4, Afternoon: 5, EveningRush: 7, Night: 4}},
	{LineID: "7", Levels: CongestionLevels{EarlyMorning: 3, MorningRush: 7, Morning: 5, Lunch: 4, Afternoon: 5, EveningRush: 7, Night: 4}},
	{LineID: "9", Levels: CongestionLevels{EarlyMorning: 4, MorningRush: 10, Morning: 6, Lunch: 5, Afternoon: 6, EveningRush: 9, Night: 5},
		SectionOverrides: map[string]int{"136-329": 10}},
	{LineID: "A", Levels: CongestionLevels{EarlyMorning: 4, MorningRush: 6, Morning: 5, Lunch: 5, Afternoon: 5, EveningRush: 6, Night: 4}},
	{LineID: "K", Levels: CongestionLevels{EarlyMorning: 2, MorningRush: 6, Morning: 4, Lunch: 3, Afternoon: 4, EveningRush: 6, Night: 3}},
}

// SeoulNetwork builds the default Seoul reference network. Call it once at
// startup; the returned network is immutable.
func SeoulNetwork() *Network {
	return NewNetwork(
		NewStationDirectory(seoulStations),
		NewTravelTimeTable(seoulTravelTimes),
		NewExpressTimetable(seoulExpressSchedules),
		NewCongestionModel(seoulCongestion),
	)
}

func intPtr(v int) *int { return &v }
