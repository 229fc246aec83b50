package search

import (
	"fmt"
	"strings"

	"github.com/corey/vacha/internal/domain/lexicon"
)

// Direction selects which column is searched and which is reported.
type Direction int

const (
	// EnglishToHeadword searches glosses and reports headwords.
	EnglishToHeadword Direction = iota
	// HeadwordToEnglish searches headwords and reports glosses.
	HeadwordToEnglish
)

// SearchField is the column the query is matched against.
func (d Direction) SearchField() lexicon.Field {
	if d == HeadwordToEnglish {
		return lexicon.FieldHeadword
	}
	return lexicon.FieldGloss
}

// ResultField is the column reported for each match.
func (d Direction) ResultField() lexicon.Field {
	if d == HeadwordToEnglish {
		return lexicon.FieldGloss
	}
	return lexicon.FieldHeadword
}

func (d Direction) String() string {
	return d.SearchField().String() + " to " + d.ResultField().String()
}

// Short returns the two-letter form used by flags and the shell ("en", "ev").
func (d Direction) Short() string {
	if d == HeadwordToEnglish {
		return "ev"
	}
	return "en"
}

// MarshalText encodes the short form.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.Short()), nil
}

// UnmarshalText accepts anything ParseDirection does.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDirection accepts the short forms, the column-pair forms and the
// long "English to Eald-vacha" labels, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "eng", "english", "en-ev", "english to eald-vacha":
		return EnglishToHeadword, nil
	case "ev", "eald-vacha", "ev-en", "eald-vacha to english":
		return HeadwordToEnglish, nil
	}
	return 0, fmt.Errorf("unknown direction %q (want en or ev)", s)
}
