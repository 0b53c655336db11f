package validators

import "go.mongodb.org/mongo-driver/bson"

var HouseValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"ownerEmail",
			"name",
			"address",
			"city",
			"isBooking",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"ownerEmail": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 120,
			},

			"address": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"city": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"bedrooms": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"bathrooms": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"room_size": bson.M{
				"bsonType": "number",
				"minimum":  0,
			},

			"rent_per_month": bson.M{
				"bsonType": "number",
				"minimum":  0,
			},

			"isBooking": bson.M{
				"bsonType": "bool",
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
