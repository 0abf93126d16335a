package cache

import (
	"fmt"
	"net/url"
)

const questionPrefix = "questions:"

// QuestionKeysPattern matches every question cache key
const QuestionKeysPattern = questionPrefix + "*"

// FiltersKey is the key for the available filter values
func FiltersKey() string {
	return questionPrefix + "filters"
}

// ListKey builds a stable key for one list query. params is encoded with
// url.Values so key order does not depend on map iteration.
func ListKey(params url.Values, page, limit int) string {
	return fmt.Sprintf("%slist:%s:p%d:l%d", questionPrefix, params.Encode(), page, limit)
}
