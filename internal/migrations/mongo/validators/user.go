package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"email", "password", "firstName", "createdAt"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id": bson.M{"bsonType": "objectId"},
			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},
			"password":    bson.M{"bsonType": "string"},
			"firstName":   bson.M{"bsonType": "string", "maxLength": 50},
			"lastName":    bson.M{"bsonType": "string", "maxLength": 50},
			"displayName": bson.M{"bsonType": "string"},
			"isLoggedIn":  bson.M{"bsonType": "bool"},
			"createdAt":   bson.M{"bsonType": "date"},
		},
	},
}
