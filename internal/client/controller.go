package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Page は画面の識別子。
type Page string

const (
	PageHome    Page = "home"
	PageShop    Page = "shop"
	PageLogin   Page = "login"
	PageSignup  Page = "signup"
	PageProfile Page = "profile"
)

// Pages は全画面を表示順に返す。
func Pages() []Page {
	return []Page{PageHome, PageShop, PageLogin, PageSignup, PageProfile}
}

// ユーザーに表示するメッセージ
const (
	MsgMissingFields      = "Please fill in all fields."
	MsgLoginRequired      = "Please log in to access this feature."
	MsgInvalidLogin       = "Invalid email or password."
	MsgRegistrationFailed = "Registration failed."
	MsgRegistered         = "Registration successful! Please log in."
	MsgRecipeSaved        = "Recipe saved successfully!"
	MsgSaveFailed         = "Failed to save recipe."
	MsgLoggedOut          = "Logged out successfully!"
	MsgNoSavedRecipes     = "No saved recipes yet."
	MsgEnterIngredients   = "Please enter some ingredients."
	MsgEnterLocation      = "Please enter a location!"
	MsgNotLoggedIn        = "Not logged in."
)

// 入力チェックとセッションのエラー。メッセージはそのまま画面に表示する。
var (
	ErrMissingFields     = errors.New(MsgMissingFields)
	ErrLoginRequired     = errors.New(MsgLoginRequired)
	ErrInvalidLogin      = errors.New(MsgInvalidLogin)
	ErrMissingIngredient = errors.New(MsgEnterIngredients)
	ErrMissingLocation   = errors.New(MsgEnterLocation)
)

// API はControllerが使用するAPI操作。*APIClientが実装する。
type API interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (*User, error)
	RecipesByMood(ctx context.Context, mood string) ([]Recipe, error)
	RecipesByIngredients(ctx context.Context, ingredients string) ([]Recipe, error)
	RestaurantsByCity(ctx context.Context, city string) ([]Restaurant, error)
	SaveRecipe(ctx context.Context, userID, recipeID, title string) (string, error)
	SavedRecipes(ctx context.Context, userID string) ([]SavedRecipe, error)
}

// View は操作結果として描画する画面の状態。
type View struct {
	Page         Page          `json:"page" yaml:"page"`
	Notice       string        `json:"notice,omitempty" yaml:"notice,omitempty"`
	Session      *Session      `json:"session,omitempty" yaml:"session,omitempty"`
	Recipes      []Recipe      `json:"recipes,omitempty" yaml:"recipes,omitempty"`
	Restaurants  []Restaurant  `json:"restaurants,omitempty" yaml:"restaurants,omitempty"`
	SavedRecipes []SavedRecipe `json:"savedRecipes,omitempty" yaml:"savedRecipes,omitempty"`
}

// Controller は画面遷移とセッションを管理する。
// 常にちょうど1つの画面が表示中となる。初期画面はhome。
type Controller struct {
	api     API
	store   SessionStore
	current Page
}

// NewController はControllerを生成する。
func NewController(api API, store SessionStore) *Controller {
	return &Controller{
		api:     api,
		store:   store,
		current: PageHome,
	}
}

// Current は表示中の画面を返す。
func (c *Controller) Current() Page {
	return c.current
}

// Session は現在のセッションを返す。未ログインの場合はnilを返す。
func (c *Controller) Session() (*Session, error) {
	return c.store.Load()
}

// Show は指定画面を表示中にする。
// profileを表示する場合はセッションのユーザーの保存済みレシピを取得する。
// 未ログインでprofileを表示しようとした場合はloginにリダイレクトする。
func (c *Controller) Show(ctx context.Context, page Page) (*View, error) {
	if !slices.Contains(Pages(), page) {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	if page != PageProfile {
		c.current = page
		return &View{Page: page}, nil
	}

	session, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return c.redirectToLogin(), nil
	}

	c.current = PageProfile
	view := &View{Page: PageProfile, Session: session}
	saved, err := c.api.SavedRecipes(ctx, session.UserID)
	if err != nil {
		return view, fmt.Errorf("failed to load saved recipes: %w", err)
	}
	view.SavedRecipes = saved
	return view, nil
}

// AuthGuard はログイン済みの場合のみ指定画面を表示する。
// 未ログインの場合は要求を破棄してloginを表示する。
func (c *Controller) AuthGuard(ctx context.Context, page Page) (*View, error) {
	session, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return c.redirectToLogin(), nil
	}
	return c.Show(ctx, page)
}

// Register はユーザーを登録し、成功した場合はloginを表示する。
func (c *Controller) Register(ctx context.Context, name, email, password string) (*View, error) {
	name, email, password = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(password)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	if _, err := c.api.Register(ctx, name, email, password); err != nil {
		var respErr *ResponseError
		if errors.As(err, &respErr) && respErr.Message == "" {
			return nil, errors.New(MsgRegistrationFailed)
		}
		return nil, err
	}

	c.current = PageLogin
	return &View{Page: PageLogin, Notice: MsgRegistered}, nil
}

// Login は認証に成功した場合にセッションを保存し、profileを表示する。
func (c *Controller) Login(ctx context.Context, email, password string) (*View, error) {
	email, password = strings.TrimSpace(email), strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := c.api.Login(ctx, email, password)
	if err != nil {
		var respErr *ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusBadRequest {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}

	if err := c.store.Save(&Session{UserID: user.ID, UserName: user.Name, UserEmail: user.Email}); err != nil {
		return nil, err
	}
	return c.Show(ctx, PageProfile)
}

// Logout はセッションを破棄してloginを表示する。
func (c *Controller) Logout(ctx context.Context) (*View, error) {
	if err := c.store.Clear(); err != nil {
		return nil, err
	}
	c.current = PageLogin
	return &View{Page: PageLogin, Notice: MsgLoggedOut}, nil
}

// WhoAmI は現在のセッションを表示する。画面は切り替えない。
func (c *Controller) WhoAmI(ctx context.Context) (*View, error) {
	session, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	view := &View{Page: c.current, Session: session}
	if session == nil {
		view.Notice = MsgNotLoggedIn
	}
	return view, nil
}

// SearchByMood は気分キーワードでレシピを検索する。
func (c *Controller) SearchByMood(ctx context.Context, mood string) (*View, error) {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		return nil, ErrMissingFields
	}
	recipes, err := c.api.RecipesByMood(ctx, mood)
	if err != nil {
		return nil, err
	}
	return &View{Page: c.current, Recipes: recipes}, nil
}

// SearchByIngredients は食材リストでレシピを検索する。
func (c *Controller) SearchByIngredients(ctx context.Context, ingredients string) (*View, error) {
	ingredients = strings.TrimSpace(ingredients)
	if ingredients == "" {
		return nil, ErrMissingIngredient
	}
	recipes, err := c.api.RecipesByIngredients(ctx, ingredients)
	if err != nil {
		return nil, err
	}
	return &View{Page: c.current, Recipes: recipes}, nil
}

// FindRestaurants は都市名でレストランを検索する。
func (c *Controller) FindRestaurants(ctx context.Context, city string) (*View, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrMissingLocation
	}
	restaurants, err := c.api.RestaurantsByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	return &View{Page: c.current, Restaurants: restaurants}, nil
}

// SaveRecipe はログイン中のユーザーにレシピを保存する。
func (c *Controller) SaveRecipe(ctx context.Context, recipeID, title string) (*View, error) {
	session, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrLoginRequired
	}

	recipeID, title = strings.TrimSpace(recipeID), strings.TrimSpace(title)
	if recipeID == "" || title == "" {
		return nil, ErrMissingFields
	}

	if _, err := c.api.SaveRecipe(ctx, session.UserID, recipeID, title); err != nil {
		return nil, fmt.Errorf("%s: %w", MsgSaveFailed, err)
	}
	return &View{Page: c.current, Notice: MsgRecipeSaved}, nil
}

func (c *Controller) redirectToLogin() *View {
	c.current = PageLogin
	return &View{Page: PageLogin, Notice: MsgLoginRequired}
}

var _ API = (*APIClient)(nil)
