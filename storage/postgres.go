// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

var postgresRequiredSettings = []string{"user", "password", "host", "port", "dbname", "fields"}

// PostgresAdapter 查询 PostgreSQL 上的单张表 把匹配的首行投影为 JSON 对象
//
// 查询模板固定为 `SELECT <fields> FROM <entity> WHERE <id column> = $1` entity
// 由调用方在运行时传入(即 provider 名称) <fields>/<id column> 来自构造时的 settings
type PostgresAdapter struct {
	db       *sql.DB
	fields   string
	idColumn string
}

// NewPostgresAdapter 校验必需 settings 并打开(惰性)数据库连接池
func NewPostgresAdapter(settings map[string]string) (*PostgresAdapter, error) {
	for _, key := range postgresRequiredSettings {
		if settings[key] == "" {
			return nil, newConfigError("postgres: missing required setting %q", key)
		}
	}

	idColumn := settings["id_column"]
	if idColumn == "" {
		idColumn = "id"
	}

	sslmode := settings["sslmode"]
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		settings["user"], settings["password"], settings["host"], settings["port"], settings["dbname"], sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, newConfigError("postgres: failed to open connection pool: %v", err)
	}

	return &PostgresAdapter{db: db, fields: settings["fields"], idColumn: idColumn}, nil
}

// FetchRecord 执行模板查询 返回首行投影为 JSON 的结果
func (a *PostgresAdapter) FetchRecord(ctx context.Context, entity, id string) ([]Record, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", a.fields, entity, a.idColumn)

	rows, err := a.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, newBackendError("postgres: query against %q failed: %v", entity, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, newBackendError("postgres: failed to read result columns: %v", err)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, newBackendError("postgres: row iteration failed: %v", err)
		}
		return []Record{}, nil
	}

	values := make([]any, len(cols))
	scanArgs := make([]any, len(cols))
	for i := range values {
		scanArgs[i] = &values[i]
	}
	if err := rows.Scan(scanArgs...); err != nil {
		return nil, newBackendError("postgres: row scan failed: %v", err)
	}

	record := make(Record, len(cols))
	for i, col := range cols {
		record[col] = stringifyColumn(values[i])
	}
	return []Record{record}, nil
}
