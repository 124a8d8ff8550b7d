// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package resolver

import "strings"

// institutionAliases maps common short forms to fully-qualified queries.
// Expansion happens before any provider call so a bare "PKU" resolves to
// the campus instead of whatever the provider guesses first.
var institutionAliases = map[string]string{
	"PKU":   "Peking University, Haidian, Beijing",
	"THU":   "Tsinghua University, Haidian, Beijing",
	"RUC":   "Renmin University of China, Haidian, Beijing",
	"BNU":   "Beijing Normal University, Haidian, Beijing",
	"Fudan": "Fudan University, Yangpu, Shanghai",
	"SJTU":  "Shanghai Jiao Tong University, Minhang, Shanghai",
	"ZJU":   "Zhejiang University, Hangzhou, Zhejiang",
	"SYSU":  "Sun Yat-sen University, Guangzhou, Guangdong",
	"SCUT":  "South China University of Technology, Guangzhou, Guangdong",
	"HUST":  "Huazhong University of Science and Technology, Wuhan, Hubei",
}

// majorCities are the city names recognized for hint voting and for the
// bare-city-name ambiguity check.
var majorCities = []string{
	"Beijing", "Shanghai", "Guangzhou", "Shenzhen", "Hangzhou",
	"Nanjing", "Wuhan", "Chengdu", "Xi'an", "Tianjin",
	"Chongqing", "Suzhou", "Changsha", "Zhengzhou", "Jinan",
	"Qingdao", "Dalian", "Xiamen", "Fuzhou", "Kunming",
}

// ExpandAlias maps a known short form to its full query; unknown input is
// returned trimmed but otherwise untouched.
func ExpandAlias(address string) string {
	trimmed := strings.TrimSpace(address)
	if full, ok := institutionAliases[trimmed]; ok {
		return full
	}
	return trimmed
}

// CityHint votes a city out of the raw inputs: each address containing a
// recognized city name (directly or after alias expansion) counts one vote
// for that city, and the city with the most votes wins. Returns "" when no
// address names a city.
func CityHint(addresses []string) string {
	votes := map[string]int{}
	for _, addr := range addresses {
		if addr == "" {
			continue
		}
		expanded := ExpandAlias(addr)
		for _, city := range majorCities {
			if strings.Contains(addr, city) || strings.Contains(expanded, city) {
				votes[city]++
			}
		}
	}

	best, bestVotes := "", 0
	for _, city := range majorCities {
		if votes[city] > bestVotes {
			best, bestVotes = city, votes[city]
		}
	}
	return best
}

// isBareCityName reports whether the input is exactly a recognized city
// name, which is too broad to resolve to a meeting location.
func isBareCityName(address string) bool {
	for _, city := range majorCities {
		if address == city {
			return true
		}
	}
	return false
}
