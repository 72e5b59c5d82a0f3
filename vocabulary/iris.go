package vocabulary

// Base namespace IRIs
const (
	RDFBase = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XSDBase = "http://www.w3.org/2001/XMLSchema#"
	SPBase  = "http://spinrdf.org/sp#"
	RSBase  = "http://www.w3.org/2001/sw/DataAccess/tests/result-set#"
)

// RDF core vocabulary
const (
	RDFType  = RDFBase + "type"
	RDFFirst = RDFBase + "first"
	RDFRest  = RDFBase + "rest"
	RDFNil   = RDFBase + "nil"
)

// XSD datatype IRIs used for typed literals
const (
	XSDString  = XSDBase + "string"
	XSDInteger = XSDBase + "integer"
	XSDLong    = XSDBase + "long"
	XSDDouble  = XSDBase + "double"
	XSDBoolean = XSDBase + "boolean"
)

// SPIN SPARQL syntax vocabulary: query classes
const (
	SPSelect        = SPBase + "Select"
	SPConstruct     = SPBase + "Construct"
	SPDescribe      = SPBase + "Describe"
	SPAsk           = SPBase + "Ask"
	SPVariable      = SPBase + "Variable"
	SPAsc           = SPBase + "Asc"
	SPDesc          = SPBase + "Desc"
	SPTriplePattern = SPBase + "TriplePattern"
)

// SPIN SPARQL syntax vocabulary: query clause predicates
const (
	SPResultVariables = SPBase + "resultVariables"
	SPResultNodes     = SPBase + "resultNodes"
	SPTemplates       = SPBase + "templates"
	SPWhere           = SPBase + "where"
	SPLimit           = SPBase + "limit"
	SPOffset          = SPBase + "offset"
	SPOrderBy         = SPBase + "orderBy"
	SPDistinct        = SPBase + "distinct"
	SPReduced         = SPBase + "reduced"
	SPExpression      = SPBase + "expression"
	SPVarName         = SPBase + "varName"
	SPSubject         = SPBase + "subject"
	SPPredicate       = SPBase + "predicate"
	SPObject          = SPBase + "object"
	SPText            = SPBase + "text"
)

// SPARQL result-set vocabulary, used when tabular SELECT/ASK results are
// normalized into a graph-shaped model
const (
	RSResultSet      = RSBase + "ResultSet"
	RSSolution       = RSBase + "solution"
	RSBinding        = RSBase + "binding"
	RSVariable       = RSBase + "variable"
	RSValue          = RSBase + "value"
	RSResultVariable = RSBase + "resultVariable"
	RSBooleanResult  = RSBase + "boolean"
	RSIndex          = RSBase + "index"
)
