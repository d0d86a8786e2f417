package cache

import (
	"fmt"
	"time"
)

const (
	keyProduct = "products:%d"
	ProductTTL = time.Hour
)

func ProductKey(productID int64) string {
	return fmt.Sprintf(keyProduct, productID)
}
