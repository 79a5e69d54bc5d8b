package http

// Signup godoc
// @Summary Create a new account
// @Description Register a new user and return a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,password=string} true "Signup data"
// @Success 201 {object} object{token=string,user=object{id=int,name=string,email=string,avatar_url=string}}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/signup [post]
func (h *UserHandler) SignupDoc() {}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password, returns a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=object}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func (h *UserHandler) LoginDoc() {}

// Logout godoc
// @Summary Log out
// @Description Invalidate the current session token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/logout [post]
func (h *UserHandler) LogoutDoc() {}

// Me godoc
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{id=int,name=string,email=string,avatar_url=string}
// @Failure 401 {object} object{error=string}
// @Router /users/me [get]
func (h *UserHandler) MeDoc() {}
