// Package format содержит чистые функции отображения данных записей.
package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Placeholder выводится вместо пустого бюджета.
const Placeholder = "-"

var budgetRe = regexp.MustCompile(`(?i)^\$?(\d+(?:,\d{3})*(?:\.\d+)?)\s*([KMB]?)$`)

var multipliers = map[string]float64{
	"":  1,
	"K": 1e3,
	"M": 1e6,
	"B": 1e9,
}

type unit struct {
	size   float64
	suffix string
}

// единицы компактной записи по возрастанию
var compactUnits = []unit{{1e6, "M"}, {1e9, "B"}, {1e12, "T"}}

// FormatBudget приводит бюджет к виду валюты USD:
// от миллиона компактно с одним знаком после запятой ("$1.5M"),
// меньше: полностью без дробной части ("$100,000").
// Строки, не похожие на сумму, возвращаются как есть.
func FormatBudget(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Placeholder
	}

	m := budgetRe.FindStringSubmatch(s)
	if m == nil {
		return raw
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return raw
	}
	amount *= multipliers[strings.ToUpper(m[2])]

	if amount >= 1e6 {
		return compact(amount)
	}
	return "$" + humanize.Comma(int64(math.Round(amount)))
}

func compact(amount float64) string {
	i := 0
	for i+1 < len(compactUnits) && amount >= compactUnits[i+1].size {
		i++
	}
	v := roundTenth(amount / compactUnits[i].size)
	// 999.96M округляется до 1000M: переходим к следующей единице
	for v >= 1000 && i+1 < len(compactUnits) {
		i++
		v = roundTenth(amount / compactUnits[i].size)
	}

	var num string
	if v >= 1000 {
		// v может не влезать в int64, форматируем через float
		num = humanize.CommafWithDigits(math.Round(v), 0)
	} else {
		num = humanize.FtoaWithDigits(v, 1)
	}
	return "$" + num + compactUnits[i].suffix
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
