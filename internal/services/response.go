package services

import (
	"sort"

	"isorail.dev/internal/generation"
	"isorail.dev/internal/models"
)

func position(p generation.Point) models.Position {
	return models.Position{X: p.X, Y: p.Y}
}

// rowMajor orders cells top row first, the order a renderer walks the map
func rowMajor(a, b generation.Point) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// WorldResponse converts a world snapshot into its wire form
func WorldResponse(w *generation.World) *models.WorldResponse {
	resp := &models.WorldResponse{
		ID:             w.ID.String(),
		Seed:           w.Seed,
		Cols:           w.Grid.Cols,
		Rows:           w.Grid.Rows,
		TileWidthHalf:  generation.TileWidthHalf,
		TileHeightHalf: generation.TileHeightHalf,
		Tiles:          make([][]string, w.Grid.Rows),
		Waypoints:      make([]models.Waypoint, len(w.Waypoints)),
		Route:          RouteResponse(w.Route),
		Placement: models.Placement{
			Target:   w.Placement.Target,
			Placed:   w.Placement.Placed,
			Attempts: w.Placement.Attempts,
		},
		GeneratedAt: w.GeneratedAt,
	}

	for r, row := range w.Grid.Cells {
		resp.Tiles[r] = make([]string, len(row))
		for c, t := range row {
			resp.Tiles[r][c] = t.String()
		}
	}

	for i, wp := range w.Waypoints {
		resp.Waypoints[i] = models.Waypoint{Position: position(wp.Point), Name: wp.Name}
	}

	cells := make([]generation.Point, 0, len(w.Cities))
	for p := range w.Cities {
		cells = append(cells, p)
	}
	sort.Slice(cells, func(i, j int) bool { return rowMajor(cells[i], cells[j]) })
	resp.Cities = make([]models.City, 0, len(cells))
	for _, p := range cells {
		feat := w.Cities[p]
		city := models.City{Position: position(p), Name: feat.Name, Buildings: make([]models.Building, len(feat.Buildings))}
		for i, b := range feat.Buildings {
			city.Buildings[i] = models.Building{
				OffsetX:   b.OffsetX,
				OffsetY:   b.OffsetY,
				HalfWidth: b.HalfWidth,
				HalfDepth: b.HalfDepth,
				Height:    b.Height,
				Wall:      b.Wall,
				Roof:      b.Roof,
			}
		}
		resp.Cities = append(resp.Cities, city)
	}

	cells = cells[:0]
	for p := range w.Forests {
		cells = append(cells, p)
	}
	sort.Slice(cells, func(i, j int) bool { return rowMajor(cells[i], cells[j]) })
	resp.Forests = make([]models.Forest, 0, len(cells))
	for _, p := range cells {
		feat := w.Forests[p]
		forest := models.Forest{Position: position(p), Trees: make([]models.Tree, len(feat.Trees))}
		for i, t := range feat.Trees {
			forest.Trees[i] = models.Tree{DX: t.DX, DY: t.DY, Scale: t.Scale}
		}
		resp.Forests = append(resp.Forests, forest)
	}

	return resp
}

// RouteResponse converts a route into its wire form
func RouteResponse(r *generation.Route) models.RouteResponse {
	resp := models.RouteResponse{
		Points:   make([]models.Position, len(r.Points)),
		Fallback: r.Fallback,
	}
	for i, p := range r.Points {
		resp.Points[i] = position(p)
	}
	for _, f := range r.Skipped {
		resp.Skipped = append(resp.Skipped, models.SkippedSegment{
			From:   f.From.Name,
			To:     f.To.Name,
			Reason: f.Err.Error(),
		})
	}
	return resp
}

// WorldNotice summarises a world for the live feed
func WorldNotice(w *generation.World) models.WorldNotice {
	return models.WorldNotice{ID: w.ID.String(), Seed: w.Seed, Fallback: w.Route.Fallback}
}
