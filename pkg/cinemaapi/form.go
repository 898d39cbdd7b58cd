package cinemaapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"sort"
	"strconv"
)

// encodeForm writes body as multipart form data. Nested maps and slices
// flatten to parent[key] and parent[index]; nil values become empty strings.
// Keys are written in sorted order.
func encodeForm(w io.Writer, body map[string]any) (string, error) {
	mw := multipart.NewWriter(w)
	if err := appendForm(mw, "", body); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}

func appendForm(mw *multipart.Writer, key string, value any) error {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := appendForm(mw, nestedKey(key, k), v[k]); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, item := range v {
			if err := appendForm(mw, nestedKey(key, strconv.Itoa(i)), item); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for i, item := range v {
			if err := mw.WriteField(nestedKey(key, strconv.Itoa(i)), item); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return mw.WriteField(key, "")
	case string:
		return mw.WriteField(key, v)
	case int:
		return mw.WriteField(key, strconv.Itoa(v))
	case ID:
		return mw.WriteField(key, string(v))
	case bool:
		return mw.WriteField(key, strconv.FormatBool(v))
	default:
		return mw.WriteField(key, fmt.Sprint(v))
	}
}

func nestedKey(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "[" + key + "]"
}
