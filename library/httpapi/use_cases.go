package httpapi

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/features/command/createauthor"
	"github.com/AntonStoeckl/library-records-go/library/features/command/createbook"
	"github.com/AntonStoeckl/library-records-go/library/features/command/createborrower"
	"github.com/AntonStoeckl/library-records-go/library/features/command/createloan"
	"github.com/AntonStoeckl/library-records-go/library/features/command/deleteauthor"
	"github.com/AntonStoeckl/library-records-go/library/features/command/deletebook"
	"github.com/AntonStoeckl/library-records-go/library/features/command/deleteborrower"
	"github.com/AntonStoeckl/library-records-go/library/features/command/returnloan"
	"github.com/AntonStoeckl/library-records-go/library/features/command/updateauthor"
	"github.com/AntonStoeckl/library-records-go/library/features/command/updatebook"
	"github.com/AntonStoeckl/library-records-go/library/features/command/updateborrower"
	"github.com/AntonStoeckl/library-records-go/library/features/query/activeloans"
	"github.com/AntonStoeckl/library-records-go/library/features/query/authenticateuser"
	"github.com/AntonStoeckl/library-records-go/library/features/query/authorlist"
	"github.com/AntonStoeckl/library-records-go/library/features/query/authorprofile"
	"github.com/AntonStoeckl/library-records-go/library/features/query/booklist"
	"github.com/AntonStoeckl/library-records-go/library/features/query/bookview"
	"github.com/AntonStoeckl/library-records-go/library/features/query/borrowerdetails"
	"github.com/AntonStoeckl/library-records-go/library/features/query/borrowerlist"
	"github.com/AntonStoeckl/library-records-go/library/features/query/borrowerloanhistory"
	"github.com/AntonStoeckl/library-records-go/library/features/query/borrowerprofile"
	"github.com/AntonStoeckl/library-records-go/library/readmodel"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/library/shell/observable"
)

// UseCases holds one handler per operation the HTTP boundary exposes.
type UseCases struct {
	CreateLoan     shell.CommandHandler[createloan.Command, core.Loan]
	ReturnLoan     shell.CommandHandler[returnloan.Command, core.Loan]
	CreateAuthor   shell.CommandHandler[createauthor.Command, core.Author]
	UpdateAuthor   shell.CommandHandler[updateauthor.Command, core.Author]
	DeleteAuthor   shell.CommandHandler[deleteauthor.Command, uuid.UUID]
	CreateBook     shell.CommandHandler[createbook.Command, readmodel.BookView]
	UpdateBook     shell.CommandHandler[updatebook.Command, readmodel.BookView]
	DeleteBook     shell.CommandHandler[deletebook.Command, uuid.UUID]
	CreateBorrower shell.CommandHandler[createborrower.Command, core.Borrower]
	UpdateBorrower shell.CommandHandler[updateborrower.Command, core.Borrower]
	DeleteBorrower shell.CommandHandler[deleteborrower.Command, uuid.UUID]

	ActiveLoans         shell.QueryHandler[activeloans.Query, []core.Loan]
	BorrowerLoanHistory shell.QueryHandler[borrowerloanhistory.Query, []core.Loan]
	BookView            shell.QueryHandler[bookview.Query, readmodel.BookView]
	BookList            shell.QueryHandler[booklist.Query, []readmodel.BookView]
	BorrowerDetails     shell.QueryHandler[borrowerdetails.Query, core.Borrower]
	BorrowerList        shell.QueryHandler[borrowerlist.Query, []core.Borrower]
	BorrowerProfile     shell.QueryHandler[borrowerprofile.Query, readmodel.BorrowerProfile]
	AuthorProfile       shell.QueryHandler[authorprofile.Query, readmodel.AuthorProfile]
	AuthorList          shell.QueryHandler[authorlist.Query, []readmodel.AuthorProfile]
	AuthenticateUser    shell.QueryHandler[authenticateuser.Query, core.User]
}

// Observability is handed to the observable wrappers around every handler. All fields are optional.
type Observability struct {
	Metrics          shell.MetricsCollector
	Tracing          shell.TracingCollector
	ContextualLogger shell.ContextualLogger
}

// NewUseCases builds all feature handlers on deps and wraps each of them with observability.
func NewUseCases(deps shell.Dependencies, obs Observability) (UseCases, error) {
	var useCases UseCases
	var err error

	if useCases.CreateLoan, err = wrapCommand[createloan.Command, core.Loan](createloan.NewCommandHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.ReturnLoan, err = wrapCommand[returnloan.Command, core.Loan](returnloan.NewCommandHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.CreateAuthor, err = wrapCommand[createauthor.Command, core.Author](createauthor.NewCommandHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.UpdateAuthor, err = wrapCommand[updateauthor.Command, core.Author](updateauthor.NewCommandHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.DeleteAuthor, err = wrapCommand[deleteauthor.Command, uuid.UUID](deleteauthor.NewCommandHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.CreateBook, err = wrapCommand[createbook.Command, readmodel.BookView](createbook.NewCommandHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.UpdateBook, err = wrapCommand[updatebook.Command, readmodel.BookView](updatebook.NewCommandHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.DeleteBook, err = wrapCommand[deletebook.Command, uuid.UUID](deletebook.NewCommandHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.CreateBorrower, err = wrapCommand[createborrower.Command, core.Borrower](createborrower.NewCommandHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.UpdateBorrower, err = wrapCommand[updateborrower.Command, core.Borrower](updateborrower.NewCommandHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.DeleteBorrower, err = wrapCommand[deleteborrower.Command, uuid.UUID](deleteborrower.NewCommandHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.ActiveLoans, err = wrapQuery[activeloans.Query, []core.Loan](activeloans.NewQueryHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.BorrowerLoanHistory, err = wrapQuery[borrowerloanhistory.Query, []core.Loan](borrowerloanhistory.NewQueryHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.BookView, err = wrapQuery[bookview.Query, readmodel.BookView](bookview.NewQueryHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.BookList, err = wrapQuery[booklist.Query, []readmodel.BookView](booklist.NewQueryHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.BorrowerDetails, err = wrapQuery[borrowerdetails.Query, core.Borrower](borrowerdetails.NewQueryHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.BorrowerList, err = wrapQuery[borrowerlist.Query, []core.Borrower](borrowerlist.NewQueryHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.BorrowerProfile, err = wrapQuery[borrowerprofile.Query, readmodel.BorrowerProfile](borrowerprofile.NewQueryHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.AuthorProfile, err = wrapQuery[authorprofile.Query, readmodel.AuthorProfile](authorprofile.NewQueryHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.AuthorList, err = wrapQuery[authorlist.Query, []readmodel.AuthorProfile](authorlist.NewQueryHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	if useCases.AuthenticateUser, err = wrapQuery[authenticateuser.Query, core.User](authenticateuser.NewQueryHandler(deps), obs); err != nil {
		return UseCases{}, err
	}

	return useCases, nil
}

func wrapCommand[C shell.Command, R any](handler shell.CommandHandler[C, R], obs Observability) (shell.CommandHandler[C, R], error) {
	return observable.NewCommandWrapper(
		handler,
		observable.WithCommandMetrics[C, R](obs.Metrics),
		observable.WithCommandTracing[C, R](obs.Tracing),
		observable.WithCommandContextualLogging[C, R](obs.ContextualLogger),
	)
}

func wrapQuery[Q shell.Query, R any](handler shell.QueryHandler[Q, R], obs Observability) (shell.QueryHandler[Q, R], error) {
	return observable.NewQueryWrapper(
		handler,
		observable.WithQueryMetrics[Q, R](obs.Metrics),
		observable.WithQueryTracing[Q, R](obs.Tracing),
		observable.WithQueryContextualLogging[Q, R](obs.ContextualLogger),
	)
}

func (u UseCases) complete() bool {
	return u.CreateLoan != nil && u.ReturnLoan != nil &&
		u.CreateAuthor != nil && u.UpdateAuthor != nil && u.DeleteAuthor != nil &&
		u.CreateBook != nil && u.UpdateBook != nil && u.DeleteBook != nil &&
		u.CreateBorrower != nil && u.UpdateBorrower != nil && u.DeleteBorrower != nil &&
		u.ActiveLoans != nil && u.BorrowerLoanHistory != nil &&
		u.BookView != nil && u.BookList != nil &&
		u.BorrowerDetails != nil && u.BorrowerList != nil && u.BorrowerProfile != nil &&
		u.AuthorProfile != nil && u.AuthorList != nil &&
		u.AuthenticateUser != nil
}
