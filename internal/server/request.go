package server

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/jmylchreest/palex/internal/colour"
)

const (
	formatJSON = "json"
	formatJASC = "jasc"
	formatPNG  = "png"
)

// request holds the options decoded from a palette request's query string.
type request struct {
	options colour.Options
	format  string
	tile    int
	perRow  int
}

// parseRequest applies query parameters on top of defaults. Option ranges
// are left to colour.Options.Validate.
func parseRequest(q url.Values, defaults colour.Options) (request, error) {
	req := request{
		options: defaults,
		format:  formatJSON,
		tile:    colour.DefaultTileSize,
		perRow:  colour.DefaultColorsPerRow,
	}
	req.options.Progress = nil

	var err error
	if req.options.MaxColors, err = intParam(q, "colours", req.options.MaxColors); err != nil {
		return req, err
	}
	if req.options.MaxIterations, err = intParam(q, "iterations", req.options.MaxIterations); err != nil {
		return req, err
	}
	if req.tile, err = intParam(q, "tile", req.tile); err != nil {
		return req, err
	}
	if req.perRow, err = intParam(q, "per_row", req.perRow); err != nil {
		return req, err
	}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("%w: invalid seed %q", colour.ErrInvalidArgument, v)
		}
		req.options.Seed = seed
	}

	if v := q.Get("sort"); v != "" {
		cmp, err := colour.ComparatorByName(v)
		if err != nil {
			return req, err
		}
		req.options.Comparator = cmp
	}

	if v := q.Get("channels"); v != "" {
		ch, err := colour.ParseChannels(v)
		if err != nil {
			return req, err
		}
		req.options.Channels = ch
	}

	if v := q.Get("format"); v != "" {
		switch v {
		case formatJSON, formatJASC, formatPNG:
			req.format = v
		default:
			return req, fmt.Errorf("%w: unsupported format %q (supported: json, jasc, png)", colour.ErrInvalidArgument, v)
		}
	}

	if req.format == formatPNG {
		if err := colour.ValidateSwatch(req.tile, req.perRow); err != nil {
			return req, err
		}
	}

	if err := req.options.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func intParam(q url.Values, key string, def int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%w: invalid %s %q", colour.ErrInvalidArgument, key, v)
	}
	return n, nil
}
