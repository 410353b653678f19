package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for violation kinds.
// data provides optional parameters to embed in the message (for example,
// "max" or "got").
type Translator interface {
	Message(kind string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"max_length":         "must be at most {max} characters (got {got})",
		"min_length":         "must be at least {min} characters (got {got})",
		"nonempty":           "must not be empty",
		"nonempty_any":       "one of {fields} is required",
		"bounded_count":      "must contain at most {max} items (got {got})",
		"bounded_count_span": "must contain between {min} and {max} items (got {got})",
		"range":              "must be between {min} and {max} (got {got})",
		"min_value":          "must be at least {min} (got {got})",
		"one_of":             "must be one of {allowed} (got {got})",
		"format":             "must be a valid {format}",
		"required_variant":   "must be {variant}",
		"exclusive":          "only one of {fields} may be set",
		"membership":         "must match one of {of}",
		"duplicate_key":      "key '{key}' is duplicated",
	},
	"ja": {
		"max_length":         "{max}文字以内で指定してください（{got}文字）",
		"min_length":         "{min}文字以上で指定してください（{got}文字）",
		"nonempty":           "空にできません",
		"nonempty_any":       "{fields}のいずれかが必要です",
		"bounded_count":      "要素は{max}個までです（{got}個）",
		"bounded_count_span": "要素は{min}〜{max}個で指定してください（{got}個）",
		"range":              "{min}〜{max}の範囲で指定してください（{got}）",
		"min_value":          "{min}以上で指定してください（{got}）",
		"one_of":             "{allowed}のいずれかを指定してください（{got}）",
		"format":             "{format}の形式が不正です",
		"required_variant":   "{variant}である必要があります",
		"exclusive":          "{fields}は同時に指定できません",
		"membership":         "{of}のいずれかと一致する必要があります",
		"duplicate_key":      "キー'{key}'が重複しています",
	},
}

func (t dictTranslator) Message(kind string, data map[string]string) string {
	dict, ok := dictionaries[t.lang]
	if !ok {
		dict = dictionaries["en"]
	}
	tmpl, ok := dict[kind]
	if !ok {
		return kind
	}
	return render(tmpl, data)
}

// render substitutes {key} placeholders. Keys are applied in sorted order so
// output is deterministic.
func render(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// Languages lists the languages the built-in Translator knows.
func Languages() []string { return []string{"en", "ja"} }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given kind using the current Translator.
func T(kind string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(kind, data)
}
