package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/coref/markable"
	"github.com/revelaction/coref/storage"
)

// DocStore serves documents from a SQLite database. Token sequences are
// stored as JSON text, markables as one row each in document order.
type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List(labelMatch string) ([]markable.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []markable.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := markable.Doc{
				Id:    stmt.ColumnInt(0),
				Title: stmt.ColumnText(1),
			}

			if labelsStr := stmt.ColumnText(2); labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}

			if labelMatch != "" && !hasLabel(doc.Labels, labelMatch) {
				return nil
			}

			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (h *DocStore) Read(id int) (markable.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return markable.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := markable.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels, tokens FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)

			if labelsStr := stmt.ColumnText(1); labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}

			return json.Unmarshal([]byte(stmt.ColumnText(2)), &doc.Tokens)
		},
	})
	if err != nil {
		return markable.Doc{}, err
	}
	if !found {
		return markable.Doc{}, fmt.Errorf("doc not found: %d", id)
	}

	err = sqlitex.Execute(conn, "SELECT start_token, end_token, tokens, tags, entity FROM markables WHERE doc_id = ? ORDER BY pos", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			m := markable.Markable{
				Start:  stmt.ColumnInt(0),
				End:    stmt.ColumnInt(1),
				Entity: stmt.ColumnText(4),
			}

			if err := json.Unmarshal([]byte(stmt.ColumnText(2)), &m.Tokens); err != nil {
				return err
			}
			if err := json.Unmarshal([]byte(stmt.ColumnText(3)), &m.Tags); err != nil {
				return err
			}

			doc.Markables = append(doc.Markables, m)
			return nil
		},
	})
	if err != nil {
		return markable.Doc{}, err
	}

	if err := doc.Validate(); err != nil {
		return markable.Doc{}, err
	}

	return doc, nil
}

func (h *DocStore) Write(doc markable.Doc) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return err
	}
	defer endFn(&err)

	tokens, err := json.Marshal(doc.Tokens)
	if err != nil {
		return err
	}

	err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO docs (id, title, labels, tokens) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Id, doc.Title, strings.Join(doc.Labels, ","), string(tokens)},
	})
	if err != nil {
		return err
	}

	err = sqlitex.Execute(conn, "DELETE FROM markables WHERE doc_id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Id},
	})
	if err != nil {
		return err
	}

	for pos, m := range doc.Markables {
		var mtoks, mtags []byte

		// the deferred endFn inspects err
		mtoks, err = json.Marshal(m.Tokens)
		if err != nil {
			return err
		}
		mtags, err = json.Marshal(m.Tags)
		if err != nil {
			return err
		}

		err = sqlitex.Execute(conn,
			"INSERT INTO markables (doc_id, pos, start_token, end_token, tokens, tags, entity) VALUES (?, ?, ?, ?, ?, ?, ?)",
			&sqlitex.ExecOptions{
				Args: []interface{}{doc.Id, pos, m.Start, m.End, string(mtoks), string(mtags), m.Entity},
			})
		if err != nil {
			return err
		}
	}

	return nil
}

func hasLabel(labels []string, match string) bool {
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}

	return false
}
