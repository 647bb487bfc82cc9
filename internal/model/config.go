package model

import (
	"fmt"
	"time"
)

// Config is the single configuration object handed to every detector,
// classifier and adapter constructor. No package-level state: tests build
// synthetic configs and pass them in.
type Config struct {
	States    []StateConfig   `yaml:"states" mapstructure:"states"`
	Companies []CompanyConfig `yaml:"companies" mapstructure:"companies"`

	KoreanQueries []string       `yaml:"korean_queries" mapstructure:"korean_queries"`
	USSources     []SourceConfig `yaml:"us_sources" mapstructure:"us_sources"`

	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Limits      LimitsConfig      `yaml:"limits" mapstructure:"limits"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Dedup       DedupConfig       `yaml:"dedup" mapstructure:"dedup"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// StateConfig maps a state code to the textual evidence that identifies it.
type StateConfig struct {
	Code    string   `yaml:"code" mapstructure:"code"`
	Names   []string `yaml:"names" mapstructure:"names"`     // full names and Korean spellings
	Domains []string `yaml:"domains" mapstructure:"domains"` // host suffixes of known government/agency sites
}

// CompanyConfig is one curated priority company. Order in the Companies
// slice is the priority order used by the board's top selection.
type CompanyConfig struct {
	Name    string   `yaml:"name" mapstructure:"name"`
	Aliases []string `yaml:"aliases" mapstructure:"aliases"`
}

// SourceConfig describes one configured HTML source.
type SourceConfig struct {
	Name               string `yaml:"name" mapstructure:"name"`
	URL                string `yaml:"url" mapstructure:"url"`
	AllowExternalLinks bool   `yaml:"allow_external_links" mapstructure:"allow_external_links"`
}

// HTTPConfig bounds every outbound request.
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	HTTPProxy         string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls the board snapshot cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
}

// LimitsConfig caps extraction volume per channel.
type LimitsConfig struct {
	EntriesPerQuery int `yaml:"entries_per_query" mapstructure:"entries_per_query"`
	ItemsPerSource  int `yaml:"items_per_source" mapstructure:"items_per_source"`
	TopPriority     int `yaml:"top_priority" mapstructure:"top_priority"`
	OtherUpdates    int `yaml:"other_updates" mapstructure:"other_updates"`
}

// ScoringConfig holds the importance point model. The exact values are
// policy; Validate enforces the ordering contract
// priority company > any tag > provenance bonus.
type ScoringConfig struct {
	PriorityCompany int         `yaml:"priority_company" mapstructure:"priority_company"`
	TagWeights      map[Tag]int `yaml:"tag_weights" mapstructure:"tag_weights"`
	KoreanRSSBonus  int         `yaml:"korean_rss_bonus" mapstructure:"korean_rss_bonus"`
}

// DedupConfig controls near-duplicate suppression.
type DedupConfig struct {
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
}

// ConcurrencyConfig bounds the per-source fetch fan-out.
type ConcurrencyConfig struct {
	SourceWorkers int `yaml:"source_workers" mapstructure:"source_workers"`
}

// LLMConfig configures the optional post-ranking briefing.
type LLMConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultConfig returns the built-in configuration for the Southeast board.
func DefaultConfig() *Config {
	return &Config{
		States: []StateConfig{
			{Code: "GA", Names: []string{"Georgia", "조지아"}, Domains: []string{"georgia.gov", "georgia.org"}},
			{Code: "TN", Names: []string{"Tennessee", "테네시"}, Domains: []string{"tn.gov", "tnecd.com"}},
			{Code: "AL", Names: []string{"Alabama", "앨라배마"}, Domains: []string{"alabama.gov", "madeinalabama.com"}},
			{Code: "SC", Names: []string{"South Carolina", "사우스캐롤라이나"}, Domains: []string{"sc.gov", "sccommerce.com"}},
			{Code: "FL", Names: []string{"Florida", "플로리다"}, Domains: []string{"flgov.com", "selectflorida.org"}},
		},
		Companies: []CompanyConfig{
			{Name: "현대", Aliases: []string{"현대차", "현대자동차", "현대차그룹", "Hyundai"}},
			{Name: "기아", Aliases: []string{"기아차", "Kia"}},
			{Name: "LG", Aliases: []string{"LG에너지솔루션", "LG전자", "LG화학", "LGES"}},
			{Name: "삼성", Aliases: []string{"삼성전자", "삼성SDI", "Samsung"}},
			{Name: "SK", Aliases: []string{"SK온", "SK하이닉스", "SK이노베이션", "SK배터리"}},
			{Name: "한화", Aliases: []string{"한화큐셀", "한화솔루션", "Hanwha", "Qcells"}},
			{Name: "포스코", Aliases: []string{"포스코퓨처엠", "POSCO"}},
		},
		KoreanQueries: []string{
			"한국기업 미국 조지아 투자",
			"현대차 조지아 공장",
			"기아 조지아",
			"LG에너지솔루션 테네시",
			"삼성SDI 미국 공장",
			"SK온 조지아",
			"한화큐셀 조지아",
			"포스코 앨라배마",
		},
		USSources: []SourceConfig{
			{Name: "Georgia DECD", URL: "https://www.georgia.org/press-releases"},
			{Name: "Georgia Governor", URL: "https://gov.georgia.gov/press-releases"},
			{Name: "TNECD", URL: "https://tnecd.com/news/"},
			{Name: "Made in Alabama", URL: "https://www.madeinalabama.com/news/"},
			{Name: "SC Commerce", URL: "https://www.sccommerce.com/news"},
			{Name: "Select Florida", URL: "https://www.selectflorida.org/news/", AllowExternalLinks: true},
		},
		HTTP: HTTPConfig{
			Timeout:           20 * time.Second,
			UserAgent:         "seaboard/1.0 (+https://github.com/hsolkim/seaboard)",
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 2,
			Burst:             4,
			RespectRobots:     true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Limits: LimitsConfig{
			EntriesPerQuery: 20,
			ItemsPerSource:  30,
			TopPriority:     7,
			OtherUpdates:    20,
		},
		Scoring: ScoringConfig{
			PriorityCompany: 50,
			TagWeights: map[Tag]int{
				TagInvestment: 12,
				TagDeal:       10,
				TagCapital:    8,
				TagSales:      6,
				TagPolicy:     5,
				TagGeneral:    0,
			},
			KoreanRSSBonus: 3,
		},
		Dedup: DedupConfig{Threshold: 0.86},
		Concurrency: ConcurrencyConfig{
			SourceWorkers: 4,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 600,
		},
	}
}

// Validate fails fast on configuration that would make the pipeline
// meaningless. Called once at startup.
func (c *Config) Validate() error {
	if len(c.KoreanQueries) == 0 && len(c.USSources) == 0 {
		return fmt.Errorf("config: no korean_queries and no us_sources configured")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("config: http.timeout must be positive, got %v", c.HTTP.Timeout)
	}
	if c.Dedup.Threshold <= 0 || c.Dedup.Threshold > 1 {
		return fmt.Errorf("config: dedup.threshold must be in (0,1], got %v", c.Dedup.Threshold)
	}

	// Ordering contract for the point model: priority company outranks any
	// tag, and any non-general tag outranks the provenance bonus.
	maxTag := 0
	minTag := 0
	for tag, w := range c.Scoring.TagWeights {
		if w > maxTag {
			maxTag = w
		}
		if tag != TagGeneral && (minTag == 0 || w < minTag) {
			minTag = w
		}
	}
	if c.Scoring.PriorityCompany <= maxTag {
		return fmt.Errorf("config: scoring.priority_company (%d) must exceed every tag weight (max %d)",
			c.Scoring.PriorityCompany, maxTag)
	}
	if minTag > 0 && c.Scoring.KoreanRSSBonus >= minTag {
		return fmt.Errorf("config: scoring.korean_rss_bonus (%d) must be below every non-general tag weight (min %d)",
			c.Scoring.KoreanRSSBonus, minTag)
	}
	return nil
}

// PriorityIndex returns the position of a company in the priority list,
// or -1 when it is not a priority company.
func (c *Config) PriorityIndex(company string) int {
	for i, cc := range c.Companies {
		if cc.Name == company {
			return i
		}
	}
	return -1
}
