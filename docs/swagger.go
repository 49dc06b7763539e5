package docs

import "github.com/swaggo/swag"

// @title           Nested To-Do API
// @version         1.0
// @description     Multi-user to-do lists: task groups, tasks nested up to three levels, cross-group moves

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name todo_session
// @description Session cookie established by POST /login

// @tag.name Users
// @tag.description Registration, login, and logout

// @tag.name Task Groups
// @tag.description Task group management operations

// @tag.name Tasks
// @tag.description Task and subtask management operations

// Register swagger info
func SwaggerInfo() *swag.Spec {
	s, _ := swag.GetSwagger(swag.Name).(*swag.Spec)
	return s
}
