package repository

import (
	"github.com/doug-martin/goqu/v9"

	// Registers the postgres dialect used by every builder below.
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

var dialect = goqu.Dialect("postgres")
