// Package storage persists the whole cart under a single namespaced key. Every save overwrites the
// previous value.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/Alturino/storefront/cart/pkg/response"
)

const keySuffix = "cart"

func Key(namespace string) string {
	if namespace == "" {
		return keySuffix
	}
	return fmt.Sprintf("%s:%s", namespace, keySuffix)
}

func encode(entries []response.CartEntry) ([]byte, error) {
	if entries == nil {
		entries = []response.CartEntry{}
	}
	return json.Marshal(entries)
}

func decode(data []byte) ([]response.CartEntry, error) {
	entries := []response.CartEntry{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
