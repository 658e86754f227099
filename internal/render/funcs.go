package render

import (
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/iancoleman/strcase"
)

// Functions whose result depends on the clock, randomness or the
// environment. Generated sources must be reproducible.
var nonHermetic = []string{
	"now", "date", "dateInZone", "date_in_zone", "dateModify", "date_modify",
	"mustDateModify", "must_date_modify", "ago", "unixEpoch", "toDate",
	"mustToDate", "htmlDate", "htmlDateInZone",
	"randAlpha", "randAlphaNum", "randAscii", "randNumeric", "randBytes",
	"randInt", "shuffle", "uuidv4",
	"env", "expandenv",
	"genPrivateKey", "derivePassword", "buildCustomCert", "genCA",
	"genCAWithKey", "genSelfSignedCert", "genSelfSignedCertWithKey",
	"genSignedCert", "genSignedCertWithKey", "encryptAES", "bcrypt",
	"htpasswd",
}

// FuncMap returns the functions available to templates.
func FuncMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	for _, name := range nonHermetic {
		delete(funcs, name)
	}

	funcs["macro"] = strcase.ToScreamingSnake
	funcs["camel"] = strcase.ToCamel
	funcs["lower_camel"] = strcase.ToLowerCamel

	return funcs
}
