package table

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
	"github.com/jhoicas/wellness-admin/internal/domain/resource"
)

// View vista de la tabla a partir del último resultado.
func View(res resource.Resource, t *Table) dto.TableView {
	result := t.Result()
	view := dto.TableView{
		State:      result.State(),
		Columns:    res.Columns,
		Rows:       []dto.TableRow{},
		Pagination: result.Pagination,
		Query:      t.Query().DTO(),
	}
	switch view.State {
	case dto.TableError:
		_, body := dto.ErrorFrom(result.Err)
		view.Error = &body
	case dto.TableEmpty:
		view.EmptyMessage = res.EmptyMessage
	default:
		for _, rec := range result.Records {
			row, err := buildRow(res, rec)
			if err != nil {
				_, body := dto.ErrorFrom(err)
				return dto.TableView{State: dto.TableError, Columns: res.Columns, Rows: []dto.TableRow{}, Query: view.Query, Error: &body}
			}
			view.Rows = append(view.Rows, row)
		}
	}
	return view
}

// Placeholder vista de carga: perPage filas de placeholders, uno por columna.
func Placeholder(res resource.Resource, q Query) dto.TableView {
	rows := make([][]dto.SkeletonCell, q.PerPage)
	for i := range rows {
		cells := make([]dto.SkeletonCell, 0, len(res.Columns))
		for _, c := range res.Columns {
			cells = append(cells, dto.SkeletonCell{Column: c.Key, Kind: c.Skeleton})
		}
		rows[i] = cells
	}
	return dto.TableView{
		State:    dto.TableLoading,
		Columns:  res.Columns,
		Rows:     []dto.TableRow{},
		Skeleton: rows,
		Query:    q.DTO(),
	}
}

func buildRow(res resource.Resource, raw json.RawMessage) (dto.TableRow, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rec map[string]any
	if err := dec.Decode(&rec); err != nil {
		return dto.TableRow{}, fmt.Errorf("table: registro ilegible: %w", err)
	}
	row := dto.TableRow{Cells: make(map[string]any, len(res.Columns))}
	if id, ok := rec["id"]; ok && id != nil {
		row.ID = fmt.Sprint(id)
	}
	if actions, ok := rec["actions"].(map[string]any); ok {
		row.Editable, _ = actions["editable"].(bool)
		row.Deletable, _ = actions["deletable"].(bool)
	}
	for _, c := range res.Columns {
		if c.Key == resource.ActionsColumn {
			continue
		}
		row.Cells[c.Key] = rec[c.Key]
	}
	return row, nil
}
