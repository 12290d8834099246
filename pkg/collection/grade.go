package collection

import "strings"

// Grade is a condition code from the small fixed grading vocabulary.
type Grade string

// Grading vocabulary, worst to best.
const (
	GradeGood      Grade = "G"
	GradeVeryGood  Grade = "VG"
	GradeFine      Grade = "F"
	GradeVeryFine  Grade = "VF"
	GradeExtraFine Grade = "XF"
	GradeAbout     Grade = "AU"
	GradeUnc       Grade = "UNC"
)

// gradeAliases maps long-form synonyms and external catalog grade labels
// onto the local vocabulary. Keys are lowercase.
var gradeAliases = map[string]Grade{
	"g":                 GradeGood,
	"good":              GradeGood,
	"vg":                GradeVeryGood,
	"very good":         GradeVeryGood,
	"f":                 GradeFine,
	"fine":              GradeFine,
	"vf":                GradeVeryFine,
	"very fine":         GradeVeryFine,
	"xf":                GradeExtraFine,
	"ef":                GradeExtraFine,
	"extremely fine":    GradeExtraFine,
	"extra fine":        GradeExtraFine,
	"au":                GradeAbout,
	"about uncirculated": GradeAbout,
	"almost uncirculated": GradeAbout,
	"unc":               GradeUnc,
	"uncirculated":      GradeUnc,
	"bu":                GradeUnc,
	"brilliant uncirculated": GradeUnc,
	"proof":             GradeUnc,
}

// ParseGrade leniently maps a grade label onto the local vocabulary.
// Unknown labels fall back to GradeFine, the catalog's middle grade.
func ParseGrade(label string) Grade {
	key := strings.ToLower(strings.TrimSpace(label))
	if g, ok := gradeAliases[key]; ok {
		return g
	}
	// Numeric suffixes like "xf40" or "vf20" are common in external labels.
	key = strings.TrimRight(key, "0123456789+- ")
	if g, ok := gradeAliases[key]; ok {
		return g
	}
	return GradeFine
}

// Valid reports whether the grade is part of the fixed vocabulary.
func (g Grade) Valid() bool {
	switch g {
	case GradeGood, GradeVeryGood, GradeFine, GradeVeryFine, GradeExtraFine, GradeAbout, GradeUnc:
		return true
	}
	return false
}
