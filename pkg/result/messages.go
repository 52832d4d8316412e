package result

import "golang.org/x/text/language"

const (
	RunFailurePrefix    = "Execution failed: "
	NotFoundMessage     = RunFailurePrefix + "the item targeted by this action could not be found."
	StorageErrorMessage = "Database error"
)

// Messages holds the canned texts used by a Factory.
type Messages struct {
	// RunFailurePrefix is prepended by FailWithRunPrefix and FromError.
	RunFailurePrefix string `json:"run_failure_prefix"`
	NotFound         string `json:"not_found"`
	StorageError     string `json:"storage_error"`
}

var (
	English = Messages{
		RunFailurePrefix: RunFailurePrefix,
		NotFound:         NotFoundMessage,
		StorageError:     StorageErrorMessage,
	}

	TraditionalChinese = Messages{
		RunFailurePrefix: "執行失敗: ",
		NotFound:         "執行失敗: 找不到要執行動作的項目。",
		StorageError:     "資料庫錯誤",
	}
)

var (
	// first entry is the fallback of the matcher
	supportedLocales = []language.Tag{
		language.English,
		language.TraditionalChinese,
	}
	catalogs = []Messages{
		English,
		TraditionalChinese,
	}

	localeMatcher = language.NewMatcher(supportedLocales)
)

// MessagesFor returns the catalog that matches the given language
// preferences with at least High confidence, falling back to English.
func MessagesFor(tags ...language.Tag) Messages {
	_, idx, conf := localeMatcher.Match(tags...)
	// a Low match is a script mismatch, e.g. zh-Hans against zh-Hant
	if conf < language.High || idx < 0 || idx >= len(catalogs) {
		return English
	}

	return catalogs[idx]
}
