package schema

// CatalogGenreTitleTable represents the 'catalog.genretitle' junction table
type CatalogGenreTitleTable struct {
	Table   string
	ID      string
	GenreID string
	TitleID string
}

// CatalogGenreTitle is the schema definition for catalog.genretitle
var CatalogGenreTitle = CatalogGenreTitleTable{
	Table:   "catalog.genretitle",
	ID:      "id",
	GenreID: "genreid",
	TitleID: "titleid",
}
