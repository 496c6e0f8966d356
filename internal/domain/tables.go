package domain

var Tables = []interface{}{
	// Catalog
	&Category{},
	&Product{},
	&ProductPhoto{},
	// Accounts
	&User{},
}
