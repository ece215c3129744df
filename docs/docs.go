// Package docs registers the OpenAPI description served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Вход администратора",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "token и user", "schema": {"type": "object"}},
                    "401": {"description": "Неверные учётные данные", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/tournaments": {
            "get": {
                "tags": ["tournaments"],
                "summary": "Список турниров",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tournaments"],
                "summary": "Создать турнир",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "tournament", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateTournamentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "400": {"description": "Имя короче 3 символов или даты перепутаны", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Имя занято или не удалось подобрать уникальный slug", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/tournaments/{tournamentID}": {
            "get": {
                "tags": ["tournaments"],
                "summary": "Турнир по ID или slug",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["tournaments"],
                "summary": "Изменить турнир",
                "parameters": [
                    {"type": "string", "name": "tournamentID", "in": "path", "required": true},
                    {"name": "tournament", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateTournamentInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Имя занято", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/teams/{teamID}": {
            "get": {
                "tags": ["teams"],
                "summary": "Пара по ID",
                "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["teams"],
                "summary": "Изменить пару",
                "parameters": [
                    {"type": "string", "name": "teamID", "in": "path", "required": true},
                    {"name": "team", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateTeamInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "409": {"description": "Имя команды занято", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["teams"],
                "summary": "Удалить пару",
                "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/tournaments/{tournamentID}/teams": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["teams"],
                "summary": "Зарегистрировать пары",
                "parameters": [
                    {"type": "string", "name": "tournamentID", "in": "path", "required": true},
                    {"name": "teams", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/services.CreateTeamInput"}}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "409": {"description": "Имя команды занято", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/tournaments/{tournamentID}/schedule": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["schedule"],
                "summary": "Сгенерировать расписание",
                "parameters": [
                    {"type": "string", "name": "tournamentID", "in": "path", "required": true},
                    {"name": "schedule", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.GenerateScheduleInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "400": {"description": "Некорректная вместимость или дата", "schema": {"$ref": "#/definitions/error"}},
                    "422": {"description": "Меньше двух команд или нет свободного дня", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/tournaments/{tournamentID}/matches": {
            "get": {
                "tags": ["matches"],
                "summary": "Матчи турнира",
                "parameters": [
                    {"type": "string", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "string", "name": "team_id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["matches"],
                "summary": "Добавить матч вручную",
                "parameters": [
                    {"type": "string", "name": "tournamentID", "in": "path", "required": true},
                    {"name": "match", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateMatchInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "400": {"description": "Команда не из этого турнира или неверный результат", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/matches/{matchID}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["matches"],
                "summary": "Обновить результат матча",
                "parameters": [
                    {"type": "string", "name": "matchID", "in": "path", "required": true},
                    {"name": "result", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateMatchInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["matches"],
                "summary": "Удалить матч",
                "parameters": [{"type": "string", "name": "matchID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/tournaments/{tournamentID}/standings": {
            "get": {
                "tags": ["standings"],
                "summary": "Турнирная таблица",
                "description": "По умолчанию учитываются все матчи. type ограничивает типы, список через запятую.",
                "parameters": [
                    {"type": "string", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "string", "name": "type", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/tournaments/{tournamentID}/playoffs/semifinals": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["playoffs"],
                "summary": "Посеять полуфиналы",
                "parameters": [
                    {"type": "string", "name": "tournamentID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.SeedPlayoffInput"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"type": "object"}}}
            }
        },
        "/tournaments/{tournamentID}/playoffs/final": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["playoffs"],
                "summary": "Посеять финал",
                "parameters": [
                    {"type": "string", "name": "tournamentID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.SeedPlayoffInput"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"type": "object"}}}
            }
        },
        "/tournaments/{tournamentID}/export": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["export"],
                "summary": "Выгрузить турнир в Excel",
                "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/storage.UploadResult"}},
                    "503": {"description": "Хранилище не настроено", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Пользователи",
                "parameters": [
                    {"type": "string", "name": "email", "in": "query"},
                    {"type": "boolean", "name": "is_active", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/users/{userID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Пользователь по ID",
                "parameters": [{"type": "string", "name": "userID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Изменить роль или активность пользователя",
                "parameters": [
                    {"type": "string", "name": "userID", "in": "path", "required": true},
                    {"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateUserInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "403": {"description": "Нельзя менять роль или активность себе", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        }
    },
    "definitions": {
        "error": {"type": "object", "properties": {"error": {"type": "string"}}},
        "services.LoginInput": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "services.CreateTournamentInput": {"type": "object", "properties": {"name": {"type": "string"}, "start_date": {"type": "string", "example": "2024-01-01"}, "end_date": {"type": "string"}, "is_active": {"type": "boolean"}}},
        "services.UpdateTournamentInput": {"type": "object", "properties": {"name": {"type": "string"}, "start_date": {"type": "string"}, "end_date": {"type": "string"}, "is_active": {"type": "boolean"}, "is_finalized": {"type": "boolean"}}},
        "services.UpdateTeamInput": {"type": "object", "properties": {"name": {"type": "string"}, "player_one": {"type": "string"}, "player_two": {"type": "string"}}},
        "services.CreateMatchInput": {"type": "object", "properties": {"team1_id": {"type": "string"}, "team2_id": {"type": "string"}, "team1_points": {"type": "integer"}, "team2_points": {"type": "integer"}, "winner_id": {"type": "string"}, "play_date": {"type": "string", "example": "2024-01-01"}, "type": {"type": "string", "enum": ["ROUNDROBIN", "SEMIFINAL", "FINAL"]}}},
        "services.UpdateUserInput": {"type": "object", "properties": {"role": {"type": "string", "enum": ["admin", "viewer"]}, "is_active": {"type": "boolean"}}},
        "services.CreateTeamInput": {"type": "object", "properties": {"name": {"type": "string"}, "player_one": {"type": "string"}, "player_two": {"type": "string"}}},
        "services.GenerateScheduleInput": {"type": "object", "properties": {"start_date": {"type": "string", "example": "2024-01-01"}, "matches_per_day": {"type": "object", "additionalProperties": {"type": "integer"}, "example": {"1": 2, "3": 1}}}},
        "services.UpdateMatchInput": {"type": "object", "properties": {"team1_points": {"type": "integer"}, "team2_points": {"type": "integer"}, "winner_id": {"type": "string"}, "play_date": {"type": "string"}}},
        "services.SeedPlayoffInput": {"type": "object", "properties": {"play_date": {"type": "string", "example": "2024-03-02"}}},
        "storage.UploadResult": {"type": "object", "properties": {"key": {"type": "string"}, "url": {"type": "string"}, "etag": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Doubles Tournament API",
	Description:      "Round-robin scheduling, results and standings for doubles tournaments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
