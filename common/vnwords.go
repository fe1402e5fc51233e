package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var vnDigits = []string{"không", "một", "hai", "ba", "bốn", "năm", "sáu", "bảy", "tám", "chín"}

var vnScales = []string{"", "nghìn", "triệu", "tỷ", "nghìn tỷ", "triệu tỷ"}

// AmountToVietnameseWords renders a VND amount as Vietnamese words, the
// confirmation string shown next to the deposit input. Negative amounts are
// not expected and come back empty.
func AmountToVietnameseWords(amount int64) string {
	if amount < 0 {
		return ""
	}

	if amount == 0 {
		return "Không đồng"
	}

	// split into thousand-groups, least significant first
	var groups []int
	for n := amount; n > 0; n /= 1000 {
		groups = append(groups, int(n%1000))
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == 0 {
			continue
		}

		leading := i == len(groups)-1
		words := vnGroupWords(groups[i], leading)
		if vnScales[i] != "" {
			words += " " + vnScales[i]
		}

		parts = append(parts, words)
	}

	sentence := strings.Join(parts, " ") + " đồng"

	r, size := utf8.DecodeRuneInString(sentence)
	return string(unicode.ToUpper(r)) + sentence[size:]
}

func vnGroupWords(n int, leading bool) string {
	hundreds := n / 100
	tens := n / 10 % 10
	units := n % 10

	var words []string

	if hundreds > 0 || !leading {
		words = append(words, vnDigits[hundreds], "trăm")
	}

	switch {
	case tens == 0:
		if units > 0 && len(words) > 0 {
			words = append(words, "lẻ")
		}
	case tens == 1:
		words = append(words, "mười")
	default:
		words = append(words, vnDigits[tens], "mươi")
	}

	switch {
	case units == 0:
	case units == 1 && tens > 1:
		words = append(words, "mốt")
	case units == 5 && tens >= 1:
		words = append(words, "lăm")
	default:
		words = append(words, vnDigits[units])
	}

	return strings.Join(words, " ")
}
