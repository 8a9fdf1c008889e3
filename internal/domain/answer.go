package domain

// Row is one record returned by the relational backend, keyed by column name.
// Values are scalars: string, float64, int64, bool, or nil.
type Row map[string]any

// ResultSet holds relational query results with the backend's column order.
type ResultSet struct {
	Columns []string
	Rows    []Row
}

// DocumentMetadata is the attribute subset exposed on retrieved documents.
type DocumentMetadata struct {
	CodeDepartementINSEE string   `json:"code_departement_insee"`
	LibelleCommuneINSEE  string   `json:"libelle_commune_insee"`
	UsagePrincipal       string   `json:"usage_principal"`
	ClasseBilanDPE       string   `json:"classe_bilan_dpe"`
	IsPassoireThermique  int      `json:"is_passoire_thermique"`
	SurfaceTotale        *float64 `json:"s_totale_bat"`
}

// RetrievedDocument is a single hit from the semantic retrieval path.
type RetrievedDocument struct {
	EntityID string           `json:"batiment_groupe_id"`
	Text     string           `json:"text"`
	Score    float64          `json:"score"`
	Metadata DocumentMetadata `json:"metadata"`
}

// CachedResponse is the uniform answer contract produced by either execution
// path and stored in the response cache. Exactly one of RawData or
// RetrievedNodes carries data: RawData for the structured path (RetrievedNodes
// empty), RetrievedNodes for the retrieval path (RawData null).
type CachedResponse struct {
	Response       string              `json:"response"`
	RawData        []Row               `json:"raw_data"`
	RetrievedNodes []RetrievedDocument `json:"retrieved_nodes"`
}

// Classification is the classification oracle's verdict on a question.
// SQLQuery is empty for descriptive questions.
type Classification struct {
	IsQuantitative bool   `json:"is_quantitative"`
	SQLQuery       string `json:"sql_query"`
}
