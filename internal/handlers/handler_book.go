package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openlibro/library_management_app/internal/core/ports/services"
	"github.com/openlibro/library_management_app/internal/dto"
	"github.com/openlibro/library_management_app/internal/middleware"
)

// bookHandler handles the book inventory endpoints.
type bookHandler struct {
	librarySvc portssvc.LibrarySvcFacade
}

// newBookHandler creates a new bookHandler.
func newBookHandler(librarySvc portssvc.LibrarySvcFacade) *bookHandler {
	return &bookHandler{librarySvc: librarySvc}
}

// registerBookRoutes registers all book routes. All of them require an
// authenticated requester, so the group must carry AuthMiddleware.
func registerBookRoutes(rg *gin.RouterGroup, librarySvc portssvc.LibrarySvcFacade) {
	h := newBookHandler(librarySvc)
	rg.POST("/addBook", h.addBook)
	rg.POST("/borrowBook/:bookId", h.borrowBook)
	rg.POST("/returnBook/:bookId", h.returnBook)
	rg.GET("/viewAvailableBooks", h.viewAvailableBooks)
}

// requesterID pulls the authenticated user's id from the context.
func requesterID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "unauthorized request", nil))
	}
	return userID, ok
}

// addBook godoc
// @Summary Add a book to the inventory
// @Description Creates a new book with a unique book id.
// @Tags books
// @Accept json
// @Produce json
// @Param book body dto.AddBookRequest true "Book details"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/addBook [post]
func (h *bookHandler) addBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requesterID(c)
	if !ok {
		return
	}

	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	book, err := h.librarySvc.AddBook(c.Request.Context(), userID, req)
	if err != nil {
		logger.Warn("Add book failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Book added", slog.String("book_id", book.BookID))
	respondSuccess(c, http.StatusOK, dto.ToBookResponse(book), "Book added successfully")
}

// borrowBook godoc
// @Summary Borrow a book
// @Description Decrements the book's available copies and records the
// @Description borrowing for the current user.
// @Tags books
// @Produce json
// @Param bookId path string true "Book ID"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse}
// @Failure 404 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "No copies available"
// @Security BearerAuth
// @Router /users/borrowBook/{bookId} [post]
func (h *bookHandler) borrowBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requesterID(c)
	if !ok {
		return
	}
	bookID := c.Param("bookId")

	book, err := h.librarySvc.BorrowBook(c.Request.Context(), userID, bookID)
	if err != nil {
		logger.Warn("Borrow failed", slog.String("book_id", bookID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Book borrowed", slog.String("book_id", bookID))
	respondSuccess(c, http.StatusOK, dto.ToBookResponse(book), "Book borrowed successfully")
}

// returnBook godoc
// @Summary Return a borrowed book
// @Description Removes the current user's borrowing and increments the
// @Description book's available copies.
// @Tags books
// @Produce json
// @Param bookId path string true "Book ID"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse}
// @Failure 400 {object} dto.APIResponse "Book not borrowed by the user"
// @Security BearerAuth
// @Router /users/returnBook/{bookId} [post]
func (h *bookHandler) returnBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requesterID(c)
	if !ok {
		return
	}
	bookID := c.Param("bookId")

	book, err := h.librarySvc.ReturnBook(c.Request.Context(), userID, bookID)
	if err != nil {
		logger.Warn("Return failed", slog.String("book_id", bookID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Book returned", slog.String("book_id", bookID))
	respondSuccess(c, http.StatusOK, dto.ToBookResponse(book), "Book returned successfully")
}

// viewAvailableBooks godoc
// @Summary List available books
// @Description Returns all books with available copies > 0.
// @Tags books
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListBooksResponse}
// @Security BearerAuth
// @Router /users/viewAvailableBooks [get]
func (h *bookHandler) viewAvailableBooks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	books, err := h.librarySvc.ListAvailableBooks(c.Request.Context())
	if err != nil {
		logger.Error("Listing available books failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToListBooksResponse(books), "Available books fetched successfully")
}
