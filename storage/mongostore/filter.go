package mongostore

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush-verma1708/backend-crm/storage"
)

// searchFields is the fixed set of string-typed record fields the search
// term is matched against. Kept static rather than derived from the schema
// at runtime.
var searchFields = []string{
	"first_name",
	"last_name",
	"full_name",
	"magazine",
	"email",
	"model_insta_link",
	"lead_source",
	"notes",
}

// buildFilter translates a list query into a bson predicate:
// always excludes records whose derived full name is the literal
// "undefined undefined", then ANDs in a case-insensitive substring OR over
// searchFields when a search term is present, a substring match on magazine,
// and an inclusive amount range for whichever bounds are set. An empty
// search term matches everything, so its clause is simply omitted.
func buildFilter(q storage.ListQuery) bson.M {
	and := []bson.M{
		{"full_name": bson.M{"$ne": "undefined undefined"}},
	}

	if q.Search != "" {
		or := make([]bson.M, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: substring(q.Search)})
		}
		and = append(and, bson.M{"$or": or})
	}

	if q.Magazine != "" {
		and = append(and, bson.M{"magazine": substring(q.Magazine)})
	}

	amount := bson.M{}
	if q.MinPrice != nil {
		amount["$gte"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		amount["$lte"] = *q.MaxPrice
	}
	if len(amount) > 0 {
		and = append(and, bson.M{"amount": amount})
	}

	if len(and) == 1 {
		return and[0]
	}
	return bson.M{"$and": and}
}

// substring builds a case-insensitive literal substring match. The term is
// quoted so user input is never interpreted as a regex.
func substring(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
