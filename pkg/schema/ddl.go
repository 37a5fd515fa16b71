package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string
	for i := range t.NumField() {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")
		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))
}

func (st StoreTable) TableDDL() string {
	return generateDDL(st, st.TableName())
}

func (st StoreTable) IndexDDL() []string {
	return []string{}
}

func (st StoreTable) TableName() string {
	return "_tables"
}

func (sg StoreGroup) TableDDL() string {
	return generateDDL(sg, sg.TableName())
}

func (sg StoreGroup) IndexDDL() []string {
	return []string{}
}

func (sg StoreGroup) TableName() string {
	return "_groups"
}

func (sm StoreMeta) TableDDL() string {
	return generateDDL(sm, sm.TableName())
}

func (sm StoreMeta) IndexDDL() []string {
	return []string{}
}

func (sm StoreMeta) TableName() string {
	return "_meta"
}

// Catalog returns the catalog models in creation order.
func Catalog() []DDLGenerator {
	return []DDLGenerator{StoreTable{}, StoreGroup{}, StoreMeta{}}
}
