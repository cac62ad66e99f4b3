// Package language infers the target language of a translation instruction.
// Detection runs in a fixed priority order: a local keyword scan first, a
// model-based classifier second, and a static default last.
package language

import "strings"

// Default is the language identifier used when no detection step succeeds.
const Default = "english"

// keywordEntry binds a language identifier to the trigger substrings that
// select it. Triggers cover the native name, the romanized name, and the
// language or country name in other scripts, all lower-case.
type keywordEntry struct {
	lang     string
	triggers []string
}

// keywordTable is the static trigger table. Order is significant: when an
// instruction contains triggers for more than one language, the language
// defined earlier in this table wins.
var keywordTable = []keywordEntry{
	{lang: "japanese", triggers: []string{"japanese", "日本語", "にほんご", "일본어", "japan", "日本"}},
	{lang: "english", triggers: []string{"english", "英語", "英文", "영어"}},
	{lang: "korean", triggers: []string{"korean", "韓国語", "한국어", "korea", "한국"}},
	{lang: "chinese", triggers: []string{"chinese", "中文", "中国語", "중국어", "mandarin", "汉语"}},
	{lang: "spanish", triggers: []string{"spanish", "スペイン語", "español", "espanol", "西班牙语"}},
	{lang: "french", triggers: []string{"french", "フランス語", "français", "francais", "法语"}},
	{lang: "german", triggers: []string{"german", "ドイツ語", "deutsch", "德语", "독일어"}},
	{lang: "russian", triggers: []string{"russian", "ロシア語", "русский", "俄语", "러시아어"}},
}

// Supported returns the supported language identifiers in table order.
func Supported() []string {
	langs := make([]string, 0, len(keywordTable))
	for _, entry := range keywordTable {
		langs = append(langs, entry.lang)
	}
	return langs
}

// IsSupported reports whether lang is one of the supported identifiers.
func IsSupported(lang string) bool {
	for _, entry := range keywordTable {
		if entry.lang == lang {
			return true
		}
	}
	return false
}

// MatchKeyword scans the instruction for language trigger substrings and
// returns the first matching language in table order. The scan is
// case-insensitive and works on substrings, so triggers in one script are
// found inside instructions written in another. The second return value is
// false when no trigger of any language occurs in the instruction.
func MatchKeyword(instruction string) (string, bool) {
	lowered := strings.ToLower(instruction)
	for _, entry := range keywordTable {
		for _, trigger := range entry.triggers {
			if strings.Contains(lowered, trigger) {
				return entry.lang, true
			}
		}
	}
	return "", false
}
