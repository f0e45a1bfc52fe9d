package ncode

// supportedGCodes lists the G-codes the Integrex Matrix control accepts.
var supportedGCodes = map[string]struct{}{}

func init() {
	for _, code := range []string{
		"G00", "G01", "G01.1", "G02", "G03", "G02.1", "G03.1",
		"G04", "G05", "G06.1", "G06.2", "G07", "G07.1", "G09",
		"G10", "G10.1", "G10.9", "G11", "G12.1", "G13.1",
		"G17", "G18", "G19", "G20", "G21", "G22", "G23",
		"G27", "G28", "G29", "G30", "G31", "G31.1", "G31.2", "G31.3",
		"G32", "G33", "G34", "G34.1", "G35", "G36", "G37", "G37.1",
		"G40", "G41", "G42", "G43", "G44", "G49", "G50", "G52",
		"G53", "G53.5", "G54", "G54.1", "G54.2", "G55", "G56", "G57", "G58", "G59",
		"G60", "G61", "G61.1", "G62", "G63", "G64", "G65", "G66", "G66.1", "G67",
		"G68", "G68.2", "G68.5", "G69", "G69.5",
		"G70", "G71", "G71.1", "G72", "G72.1", "G73", "G74", "G75", "G76", "G77", "G78", "G79",
		"G80", "G81", "G82", "G83", "G84", "G84.2", "G84.3", "G85", "G86", "G87", "G88", "G88.2", "G89",
		"G90", "G91", "G92", "G92.5", "G93", "G94", "G95", "G96", "G97", "G98", "G99",
		// dual turret, cross machining and polar interpolation
		"G109", "G110", "G111", "G112", "G113", "G114.3",
		"G122", "G122.1", "G123", "G123.1", "G130", "G136", "G137",
		"G234.1", "G235", "G236", "G237.1",
		// turning canned cycles
		"G270", "G271", "G272", "G273", "G274", "G275", "G276",
		"G283", "G284", "G284.2", "G285", "G287", "G288", "G288.2", "G289",
		"G290", "G292", "G294",
	} {
		supportedGCodes[code] = struct{}{}
	}
}

// ValidGCode reports whether code, spelled as extracted (e.g. "G01"), is supported.
func ValidGCode(code string) bool {
	_, ok := supportedGCodes[code]
	return ok
}
