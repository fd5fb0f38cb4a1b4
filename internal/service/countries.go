package service

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// CountryOption 国家下拉选项
type CountryOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var (
	countryOnce    sync.Once
	countryOptions []CountryOption
)

// CountryOptions ISO 3166-1 alpha-2 国家列表（按英文名排序）
func CountryOptions() []CountryOption {
	countryOnce.Do(func() {
		namer := display.English.Regions()
		for a := 'A'; a <= 'Z'; a++ {
			for b := 'A'; b <= 'Z'; b++ {
				code := string([]rune{a, b})
				region, err := language.ParseRegion(code)
				if err != nil || !region.IsCountry() || region.String() != code {
					continue
				}
				name := namer.Name(region)
				if name == "" {
					name = code
				}
				countryOptions = append(countryOptions, CountryOption{Code: code, Name: name})
			}
		}
		sort.Slice(countryOptions, func(i, j int) bool {
			return countryOptions[i].Name < countryOptions[j].Name
		})
	})
	return countryOptions
}

// NormalizeCountry 校验并规范化国家代码
func NormalizeCountry(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 2 {
		return "", ErrCountryInvalid
	}
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() || region.String() != code {
		return "", ErrCountryInvalid
	}
	return code, nil
}
