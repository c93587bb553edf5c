package store

import "fmt"

func jobKey(id string) string {
	return fmt.Sprintf("job:%s", id)
}
