package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"bookedHouseId",
			"ownerEmail",
			"renterEmail",
			"renterName",
			"renterPhone",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"bookedHouseId": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"ownerEmail": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"renterEmail": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"renterName": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"renterPhone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 30,
			},

			"rent_per_month": bson.M{
				"bsonType": "number",
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
