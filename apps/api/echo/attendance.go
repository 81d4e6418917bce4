package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/export"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

type (
	attendanceApi struct {
		studentSvc *student.Service
		svc        *attendance.Service
		metrics    *Metrics
	}

	StatusRequest struct {
		Status attendance.Status `json:"status"`
	}

	CountResponse struct {
		Count int `json:"count"`
	}
)

func registerStatsAPI(g *echo.Group, svc *attendance.Service) {
	api := attendanceApi{svc: svc}
	g.GET("/stats", api.stats)
}

func registerAttendanceAPI(
	g *echo.Group,
	authn echo.MiddlewareFunc,
	studentSvc *student.Service,
	svc *attendance.Service,
	metrics *Metrics,
) {
	api := attendanceApi{studentSvc: studentSvc, svc: svc, metrics: metrics}

	tg := g.Group("", authn, teacherOnly)
	tg.GET("/dashboard", api.stats)

	ag := tg.Group("/attendance/:date")
	ag.GET("", api.view)
	ag.PUT("/:studentId", api.setStatus)
	ag.POST("/mark-all", api.markAll)
	ag.DELETE("", api.clearDay)

	rg := tg.Group("/reports/:month")
	rg.GET("", api.monthlyReport)
	rg.GET("/export.csv", api.exportMonthCSV)
	rg.GET("/export.xlsx", api.exportMonthXLSX)

	// student portal
	mg := g.Group("/me", authn, studentOnly)
	mg.GET("/attendance/:month", api.myMonth)
	mg.GET("/attendance/:month/export.csv", api.exportMyMonthCSV)
}

func (api *attendanceApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context(), core.Today())
	if err != nil {
		return errors.Wrap(err, "computing stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *attendanceApi) view(ctx echo.Context) error {
	var filter attendance.ViewFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to ViewFilter")
	}
	rows, err := api.svc.View(ctx.Request().Context(), ctx.Param("date"), filter)
	if err != nil {
		return errors.Wrap(err, "viewing attendance")
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *attendanceApi) setStatus(ctx echo.Context) error {
	var data StatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusRequest")
	}
	status := attendance.ParseStatus(string(data.Status))
	if err := api.svc.SetStatus(ctx.Request().Context(), ctx.Param("date"), ctx.Param("studentId"), status); err != nil {
		return errors.Wrap(err, "setting status")
	}
	api.metrics.MarkRecorded(status, 1)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *attendanceApi) markAll(ctx echo.Context) error {
	n, err := api.svc.BulkMarkPresent(ctx.Request().Context(), ctx.Param("date"))
	if err != nil {
		return errors.Wrap(err, "marking all present")
	}
	api.metrics.MarkRecorded(attendance.StatusPresent, n)
	return ctx.JSON(http.StatusOK, CountResponse{Count: n})
}

func (api *attendanceApi) clearDay(ctx echo.Context) error {
	if confirm, _ := strconv.ParseBool(ctx.QueryParam("confirm")); !confirm {
		return errConfirmRequired
	}
	n, err := api.svc.ClearDay(ctx.Request().Context(), ctx.Param("date"))
	if err != nil {
		return errors.Wrap(err, "clearing day")
	}
	return ctx.JSON(http.StatusOK, CountResponse{Count: n})
}

func (api *attendanceApi) monthlyReport(ctx echo.Context) error {
	report, err := api.svc.MonthlyReport(ctx.Request().Context(), ctx.Param("month"))
	if err != nil {
		return errors.Wrap(err, "building report")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *attendanceApi) monthRows(ctx echo.Context, month, studentID string) ([][]string, error) {
	rctx := ctx.Request().Context()
	records, err := api.svc.MonthRecords(rctx, month, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying month records")
	}
	students, err := api.studentSvc.QueryAll(rctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return export.AttendanceRows(records, students), nil
}

func (api *attendanceApi) exportMonthCSV(ctx echo.Context) error {
	month := ctx.Param("month")
	rows, err := api.monthRows(ctx, month, "")
	if err != nil {
		return err
	}
	return sendCSV(ctx, export.MonthFileName(month), rows)
}

func (api *attendanceApi) exportMonthXLSX(ctx echo.Context) error {
	month := ctx.Param("month")
	rows, err := api.monthRows(ctx, month, "")
	if err != nil {
		return err
	}
	return sendXLSX(ctx, export.XLSXFileName(export.MonthFileName(month)), month, rows)
}

func (api *attendanceApi) myMonth(ctx echo.Context) error {
	sess, err := mustContextSession(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.StudentMonthlyView(ctx.Request().Context(), sess.ID, ctx.Param("month"))
	if err != nil {
		return errors.Wrap(err, "building monthly view")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *attendanceApi) exportMyMonthCSV(ctx echo.Context) error {
	sess, err := mustContextSession(ctx)
	if err != nil {
		return err
	}
	month := ctx.Param("month")
	rows, err := api.monthRows(ctx, month, sess.ID)
	if err != nil {
		return err
	}
	return sendCSV(ctx, export.StudentMonthFileName(sess.ID, month), rows)
}
