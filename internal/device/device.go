// Package device строит человекочитаемую метку устройства по User-Agent.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// Unknown возвращается, когда User-Agent пуст или не распознан.
const Unknown = "Unknown Device"

// Label возвращает метку вида "Chrome on Windows". Никогда не паникует.
func Label(userAgent string) (label string) {
	defer func() {
		if recover() != nil {
			label = Unknown
		}
	}()

	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return Unknown
	}

	ua := useragent.New(userAgent)

	browser, _ := ua.Browser()
	os := ua.OSInfo().Name

	switch {
	case browser != "" && os != "":
		label = browser + " on " + os
	case browser != "":
		label = browser
	case os != "":
		label = os
	default:
		return Unknown
	}

	if ua.Mobile() {
		label += " (mobile)"
	}

	return label
}

// Name выбирает явное имя устройства, если оно задано, иначе метку по User-Agent.
func Name(explicit, userAgent string) string {
	if n := strings.TrimSpace(explicit); n != "" {
		return n
	}

	return Label(userAgent)
}
