package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// LocaleEnUS 英文（默认）
	LocaleEnUS = "en-US"
	// LocaleZhCN 简体中文
	LocaleZhCN = "zh-CN"
	// DefaultLocale 默认语言
	DefaultLocale = LocaleEnUS
)

var (
	supportedTags = []language.Tag{language.AmericanEnglish, language.SimplifiedChinese}
	localeByIndex = []string{LocaleEnUS, LocaleZhCN}
	matcher       = language.NewMatcher(supportedTags)

	catalogs = map[string]map[string]string{
		LocaleEnUS: messagesEnUS,
		LocaleZhCN: messagesZhCN,
	}
)

// ResolveLocale 解析请求语言：?lang= 优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	return MatchAcceptLanguage(c.GetHeader("Accept-Language"))
}

// MatchAcceptLanguage 根据 Accept-Language 头匹配支持的语言
func MatchAcceptLanguage(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return localeByIndex[index]
}

// NormalizeLocale 把任意语言标签归一为支持的语言
func NormalizeLocale(raw string) string {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLocale
	}
	return localeByIndex[index]
}

// T 翻译消息，缺失时回退到默认语言，再回退到 key 本身
func T(locale, key string) string {
	if msgs, ok := catalogs[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// Has 判断 key 是否在默认语言中存在
func Has(key string) bool {
	_, ok := catalogs[DefaultLocale][key]
	return ok
}
