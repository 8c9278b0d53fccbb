package kong

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// looks up a consumer by username or id
func (c *Client) GetConsumer(ctx context.Context, usernameOrID string) (*Consumer, error) {
	var consumer Consumer
	if err := c.do(ctx, http.MethodGet, consumerPath(usernameOrID), nil, &consumer); err != nil {
		return nil, err
	}

	return &consumer, nil
}

// reports whether a consumer exists, treating 404 as false
func (c *Client) ConsumerExists(ctx context.Context, usernameOrID string) (bool, error) {
	_, err := c.GetConsumer(ctx, usernameOrID)
	if err == nil {
		return true, nil
	}

	if IsNotFound(err) {
		return false, nil
	}

	return false, err
}

func (c *Client) CreateConsumer(ctx context.Context, req CreateConsumerRequest) (*Consumer, error) {
	if req.Username == "" && req.CustomID == "" {
		return nil, ErrMissingIdentifier
	}

	var consumer Consumer
	if err := c.do(ctx, http.MethodPost, "/consumers", req, &consumer); err != nil {
		return nil, err
	}

	return &consumer, nil
}

func (c *Client) DeleteConsumer(ctx context.Context, usernameOrID string) error {
	return c.do(ctx, http.MethodDelete, consumerPath(usernameOrID), nil, nil)
}

// lists one page of consumers; pass the returned Offset to get the next page
func (c *Client) ListConsumers(ctx context.Context, size int, offset string) (*ConsumerList, error) {
	query := url.Values{}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}
	if offset != "" {
		query.Set("offset", offset)
	}

	path := "/consumers"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var list ConsumerList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list consumers: %w", err)
	}

	return &list, nil
}

func consumerPath(usernameOrID string) string {
	return "/consumers/" + url.PathEscape(usernameOrID)
}
