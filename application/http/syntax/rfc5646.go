package syntax

// Language tags, without the grandfathered forms.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc5646#section-2.1
var (
	alphanum   = `[A-Za-z0-9]`
	extlang    = group(ALPHA+`{3}`, group(`-`, ALPHA+`{3}`), `{0,2}`)
	language   = alt(group(ALPHA+`{2,3}`, group(`-`, extlang), `?`), ALPHA+`{4}`, ALPHA+`{5,8}`)
	script     = ALPHA + `{4}`
	region     = alt(ALPHA+`{2}`, DIGIT+`{3}`)
	variant    = alt(alphanum+`{5,8}`, group(DIGIT, alphanum+`{3}`))
	singleton  = `[0-9A-WYZa-wyz]`
	extension  = group(singleton, group(`-`, alphanum+`{2,8}`), `+`)
	privateUse = group(`[xX]`, group(`-`, alphanum+`{1,8}`), `+`)

	langtag = group(
		language,
		group(`-`, script), `?`,
		group(`-`, region), `?`,
		group(`-`, variant), `*`,
		group(`-`, extension), `*`,
		group(`-`, privateUse), `?`,
	)

	LanguageTag = alt(langtag, privateUse)
)
