package glob

// posixClasses maps POSIX character-class names to fragments valid inside a
// regular-expression character class. Unicode general-category escapes keep
// the classes locale-independent; both RE2-style and .NET-style engines
// accept them. Built once, read-only.
var posixClasses = map[string]string{
	"alnum":  `\p{L}\p{Nd}`,
	"alpha":  `\p{L}`,
	"blank":  `\t\p{Zs}`,
	"cntrl":  `\p{Cc}`,
	"digit":  `\p{Nd}`,
	"graph":  `\p{L}\p{M}\p{N}\p{P}\p{S}`,
	"lower":  `\p{Ll}`,
	"print":  `\p{L}\p{M}\p{N}\p{P}\p{S}\p{Zs}`,
	"punct":  `\p{P}\p{S}`,
	"space":  `\t\n\v\f\r \p{Z}`,
	"upper":  `\p{Lu}`,
	"word":   `\p{L}\p{Nd}_`,
	"xdigit": `0-9A-Fa-f`,
}
