package detect

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hsolkim/seaboard/internal/model"
	"github.com/hsolkim/seaboard/internal/textnorm"
)

// UnidentifiedCompany is the last-resort marker, returned only when no
// alphanumeric token survives stop-word filtering.
const UnidentifiedCompany = "미확인"

// tokenRe extracts contiguous alphanumeric/hangul runs.
var tokenRe = regexp.MustCompile(`[0-9A-Za-z가-힣]+`)

// entitySuffixes mark tokens that look like business names: Korean sector
// suffixes plus English corporate suffixes.
var entitySuffixes = []string{
	"산업", "에너지", "화학", "건설", "모빌리티", "테크", "소재", "전자", "바이오",
	"Inc", "Corp", "LLC", "Co",
}

// companyStopwords filters titles/roles/locations/generic action words out
// of the token heuristics. Matched case-insensitively.
var companyStopwords = map[string]struct{}{
	"미국": {}, "한국": {}, "한국기업": {}, "정부": {}, "주정부": {},
	"조지아": {}, "테네시": {}, "앨라배마": {}, "사우스캐롤라이나": {}, "플로리다": {},
	"주지사": {}, "장관": {}, "대통령": {}, "의원": {},
	"공장": {}, "투자": {}, "발표": {}, "신설": {}, "증설": {}, "진출": {},
	"뉴스": {}, "속보": {}, "단독": {}, "기업": {}, "그룹": {},
	"the": {}, "a": {}, "an": {}, "new": {}, "news": {},
	"us": {}, "usa": {}, "u": {}, "s": {},
	"georgia": {}, "tennessee": {}, "alabama": {}, "florida": {},
	"south": {}, "carolina": {}, "county": {}, "state": {},
	"governor": {}, "gov": {}, "announces": {}, "announcement": {},
	"million": {}, "billion": {}, "jobs": {}, "plant": {}, "expansion": {},
}

// CompanyDetector extracts a company name from a headline. Layered from
// most precise (curated alias table) to least precise (first surviving
// token); each tier is a safety net for the previous one's failure.
type CompanyDetector struct {
	companies []model.CompanyConfig
}

// NewCompanyDetector builds a detector from the configured priority list.
func NewCompanyDetector(companies []model.CompanyConfig) *CompanyDetector {
	return &CompanyDetector{companies: companies}
}

// Detect returns the detected company name for a headline. It never
// returns an empty string.
func (d *CompanyDetector) Detect(title string) string {
	text := textnorm.Normalize(title)

	// Tier 1: curated aliases, canonical name on first hit.
	lower := strings.ToLower(text)
	for _, c := range d.companies {
		for _, alias := range append([]string{c.Name}, c.Aliases...) {
			if alias != "" && strings.Contains(lower, strings.ToLower(alias)) {
				return c.Name
			}
		}
	}

	tokens := tokenRe.FindAllString(text, -1)

	// Tier 2: leading token, unless it is a stop word or too short.
	if len(tokens) > 0 {
		if lead := tokens[0]; !isStopword(lead) && utf8.RuneCountInString(lead) >= 2 {
			return lead
		}
	}

	// Tier 3: any token carrying a business-entity suffix.
	for _, tok := range tokens {
		n := utf8.RuneCountInString(tok)
		if n < 2 || n > 40 {
			continue
		}
		for _, suffix := range entitySuffixes {
			if tok != suffix && strings.HasSuffix(tok, suffix) {
				return tok
			}
		}
	}

	// Tier 4: first surviving non-stopword token. Deliberately noisy; the
	// alternative is an "Unknown" bucket that buries real coverage.
	for _, tok := range tokens {
		if !isStopword(tok) && utf8.RuneCountInString(tok) >= 2 {
			return tok
		}
	}

	return UnidentifiedCompany
}

func isStopword(tok string) bool {
	_, ok := companyStopwords[strings.ToLower(tok)]
	return ok
}
