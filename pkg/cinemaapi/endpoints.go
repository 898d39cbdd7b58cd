package cinemaapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Login exchanges credentials for a token and keeps it for later requests.
func (c *Client) Login(ctx context.Context, login, password string) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	body := map[string]any{"login": login, "password": password}
	if err := c.do(ctx, http.MethodPost, "login", body, &result); err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", errors.New("login succeeded without a token")
	}
	c.SetToken(result.Token)
	return result.Token, nil
}

func (c *Client) AllData(ctx context.Context) (AllData, error) {
	var data AllData
	if err := c.do(ctx, http.MethodGet, "alldata", nil, &data); err != nil {
		return AllData{}, err
	}
	return data, nil
}

func (c *Client) Halls(ctx context.Context) ([]Hall, error) {
	data, err := c.AllData(ctx)
	if err != nil {
		return nil, err
	}
	return data.Halls, nil
}

func (c *Client) Movies(ctx context.Context) ([]Film, error) {
	data, err := c.AllData(ctx)
	if err != nil {
		return nil, err
	}
	return data.Films, nil
}

// ==================== HALLS ====================

func (c *Client) CreateHall(ctx context.Context, name string, rows, cols int) error {
	body := map[string]any{"name": name, "rows": rows, "cols": cols}
	return c.do(ctx, http.MethodPost, "hall", body, nil)
}

func (c *Client) DeleteHall(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "hall/"+escape(id), nil, nil)
}

func (c *Client) UpdateHallConfig(ctx context.Context, id ID, config HallConfig) error {
	body := map[string]any{
		"rows":   config.Rows,
		"cols":   config.Cols,
		"layout": config.Layout,
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("hall/%s/configuration", escape(id)), body, nil)
}

func (c *Client) UpdateHallPrices(ctx context.Context, id ID, normal, vip int) error {
	body := map[string]any{"normal": normal, "vip": vip}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("hall/%s/price", escape(id)), body, nil)
}

func (c *Client) ToggleHallSales(ctx context.Context, id ID, open bool) error {
	flag := 0
	if open {
		flag = 1
	}
	body := map[string]any{"open": flag}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("hall/%s/open", escape(id)), body, nil)
}

// ==================== MOVIES ====================

func (c *Client) CreateMovie(ctx context.Context, movie MovieData) error {
	return c.do(ctx, http.MethodPost, "movie", movie.form(), nil)
}

func (c *Client) UpdateMovie(ctx context.Context, id ID, movie MovieData) error {
	return c.do(ctx, http.MethodPost, "movie/"+escape(id), movie.form(), nil)
}

func (c *Client) DeleteMovie(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "movie/"+escape(id), nil, nil)
}

func (m MovieData) form() map[string]any {
	return map[string]any{
		"name":        m.Name,
		"description": m.Description,
		"duration":    m.Duration,
		"country":     m.Country,
		"poster":      m.Poster,
	}
}

// ==================== SEANCES ====================

func (c *Client) CreateSeance(ctx context.Context, seance SeanceData) error {
	body := map[string]any{
		"hall_id": seance.HallID,
		"film_id": seance.FilmID,
		"date":    seance.Date,
		"time":    seance.Time,
	}
	return c.do(ctx, http.MethodPost, "seance", body, nil)
}

func escape(id ID) string {
	return url.PathEscape(string(id))
}
