package kong

import (
	"context"
	"net/http"
	"net/url"

	"codeberg.org/sbomhub/server/internal/logger"
)

// mints a key-auth credential; an empty key lets the gateway generate one
func (c *Client) CreateKey(ctx context.Context, consumer, key string) (*Key, error) {
	if key != "" {
		logger.Debug("creating kong key with caller-supplied value",
			"consumer", consumer,
			"key", maskKey(key),
		)
	}

	var created Key
	if err := c.do(ctx, http.MethodPost, keysPath(consumer), createKeyRequest{Key: key}, &created); err != nil {
		return nil, err
	}

	logger.Debug("kong key created",
		"consumer", consumer,
		"key_id", created.ID,
		"key", maskKey(created.Key),
	)

	return &created, nil
}

func (c *Client) ListKeys(ctx context.Context, consumer string) ([]Key, error) {
	var list keyList
	if err := c.do(ctx, http.MethodGet, keysPath(consumer), nil, &list); err != nil {
		return nil, err
	}

	if list.Data == nil {
		return []Key{}, nil
	}

	return list.Data, nil
}

func (c *Client) DeleteKey(ctx context.Context, consumer, keyID string) error {
	return c.do(ctx, http.MethodDelete, keysPath(consumer)+"/"+url.PathEscape(keyID), nil, nil)
}

func keysPath(consumer string) string {
	return consumerPath(consumer) + "/key-auth"
}
