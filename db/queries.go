package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Render queries

//go:embed sql/insert_render.sql
var InsertRenderSQL string

//go:embed sql/mark_render_complete.sql
var MarkRenderCompleteSQL string

//go:embed sql/mark_render_error.sql
var MarkRenderErrorSQL string

//go:embed sql/select_render_by_id.sql
var SelectRenderByIDSQL string

//go:embed sql/select_recent_renders.sql
var SelectRecentRendersSQL string

//go:embed sql/delete_renders_before.sql
var DeleteRendersBeforeSQL string
