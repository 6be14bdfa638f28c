package manifest

import (
	"regexp"
	"strings"
)

var (
	hexColor        = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	functionalColor = regexp.MustCompile(`^(?i:rgba?|hsla?|hwb|lab|lch|oklab|oklch|color)\(\s*[^()]+\s*\)$`)
)

// CSS named colors plus the two keywords valid in a manifest color member.
var namedColors = map[string]struct{}{}

func init() {
	for _, n := range strings.Fields(`
		transparent currentcolor
		aliceblue antiquewhite aqua aquamarine azure beige bisque black blanchedalmond blue
		blueviolet brown burlywood cadetblue chartreuse chocolate coral cornflowerblue cornsilk
		crimson cyan darkblue darkcyan darkgoldenrod darkgray darkgreen darkgrey darkkhaki
		darkmagenta darkolivegreen darkorange darkorchid darkred darksalmon darkseagreen
		darkslateblue darkslategray darkslategrey darkturquoise darkviolet deeppink deepskyblue
		dimgray dimgrey dodgerblue firebrick floralwhite forestgreen fuchsia gainsboro ghostwhite
		gold goldenrod gray green greenyellow grey honeydew hotpink indianred indigo ivory khaki
		lavender lavenderblush lawngreen lemonchiffon lightblue lightcoral lightcyan
		lightgoldenrodyellow lightgray lightgreen lightgrey lightpink lightsalmon lightseagreen
		lightskyblue lightslategray lightslategrey lightsteelblue lightyellow lime limegreen linen
		magenta maroon mediumaquamarine mediumblue mediumorchid mediumpurple mediumseagreen
		mediumslateblue mediumspringgreen mediumturquoise mediumvioletred midnightblue mintcream
		mistyrose moccasin navajowhite navy oldlace olive olivedrab orange orangered orchid
		palegoldenrod palegreen paleturquoise palevioletred papayawhip peachpuff peru pink plum
		powderblue purple rebeccapurple red rosybrown royalblue saddlebrown salmon sandybrown
		seagreen seashell sienna silver skyblue slateblue slategray slategrey snow springgreen
		steelblue tan teal thistle tomato turquoise violet wheat white whitesmoke yellow
		yellowgreen`) {
		namedColors[n] = struct{}{}
	}
}

// IsCSSColor reports whether s is a hex, named or functional CSS color.
func IsCSSColor(s string) bool {
	if hexColor.MatchString(s) || functionalColor.MatchString(s) {
		return true
	}
	_, ok := namedColors[strings.ToLower(s)]
	return ok
}
