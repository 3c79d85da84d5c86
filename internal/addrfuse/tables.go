package addrfuse

// heavySeparators bound backward-scans for suffix-based levels: a token's
// left boundary never crosses one of these runes.
var heavySeparators = map[rune]bool{
	'。': true, '！': true, '？': true, '；': true, '：': true, '、': true,
	'（': true, '）': true, '/': true, '\\': true, '|': true,
}

// countrySuffixes are whole-token country/region names (L11). Matched as
// exact substrings, highest priority of all levels.
var countrySuffixes = []string{
	"中国", "中華人民共和國", "香港", "澳门", "澳門", "台湾", "臺灣", "美国", "美國",
}

// provinceSuffixes (L10).
var provinceSuffixes = []string{"特别行政区", "特別行政區", "自治区", "自治區", "自治州", "省", "盟", "地区", "地區"}

// citySuffixes (L9). "城市" is excluded (common noun, not an address token).
var citySuffixes = []string{"市"}

// cityExcludedPrefixSuffix guards against matching the common noun "城市".
const cityExcludedBigram = "城市"

// districtSuffixes (L8) plus named districts.
var districtSuffixes = []string{"区", "區", "县", "縣", "旗"}
var districtNamed = []string{"新界", "九龙", "九龍"}

// townshipSuffixes (L7) plus named township-level areas.
var townshipSuffixes = []string{"街道", "镇", "鎮", "乡", "鄉", "开发区", "開發區", "科技园", "科技園", "科学园", "科學園", "工业园", "工業園", "工业区", "工業區", "产业园", "產業園"}
var townshipNamed = []string{"铜锣湾", "銅鑼灣"}

// roadSuffixes (L6).
var roadSuffixes = []string{
	"环路", "環路", "大道", "大街", "胡同", "环线", "環線",
	"道中", "道东", "道東", "道西", "道南", "道北",
	"路", "街", "巷", "弄", "里", "道", "段", "期",
}

// poiSuffixes (L4). Order matters: longer/more specific suffixes first.
var poiSuffixes = []string{
	"购物公园", "購物公園", "购物艺术馆", "購物藝術館",
	"广场", "廣場", "中心", "花园", "花園", "花苑", "天地", "大厦", "大廈", "大楼", "大樓",
	"苑", "城", "港", "塔", "廊", "坊", "里", "府",
}

// buildingSuffixes (L3).
var buildingSuffixes = []string{"号楼", "號樓", "号館", "號館", "栋", "棟", "幢", "座"}

// floorSuffixes (L2).
var floorSuffixes = []string{"层", "層", "楼", "樓"}

// unitSuffixes (L1).
var unitSuffixes = []string{"单元", "單元", "室", "房"}

// parkSuffixNames identify the "科技园/工业园/..." style names referenced by
// the L7<->L3 and L5->L7 whitelist rules.
var parkSuffixNames = map[string]bool{}

func init() {
	for _, s := range []string{"科技园", "科技園", "科学园", "科學園", "工业园", "工業園", "工业区", "工業區", "产业园", "產業園"} {
		parkSuffixNames[s] = true
	}
}
