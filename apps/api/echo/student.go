package echoapi

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/export"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

type studentApi struct {
	svc    *student.Service
	attSvc *attendance.Service
}

func registerStudentAPI(g *echo.Group, svc *student.Service, attSvc *attendance.Service) {
	api := studentApi{svc: svc, attSvc: attSvc}

	g.GET("", api.query)
	g.POST("", api.create)
	g.GET("/classes", api.classes)
	g.GET("/export.csv", api.exportCSV)
	g.GET("/export.xlsx", api.exportXLSX)

	// detail endpoints
	g.DELETE("/:id", api.destroy)
	g.PUT("/:id/password", api.resetPassword)
	g.GET("/:id/attendance/:month", api.monthlyView)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.Search(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "searching students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	stu, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, stu)
}

func (api *studentApi) classes(ctx echo.Context) error {
	classes, err := api.svc.DistinctClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *studentApi) exportCSV(ctx echo.Context) error {
	students, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return sendCSV(ctx, export.StudentsFileName(), export.StudentRows(students))
}

func (api *studentApi) exportXLSX(ctx echo.Context) error {
	students, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return sendXLSX(ctx, export.XLSXFileName(export.StudentsFileName()), "Students", export.StudentRows(students))
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) resetPassword(ctx echo.Context) error {
	var data student.ResetPassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetPassword")
	}
	if err := api.svc.ResetPassword(ctx.Request().Context(), ctx.Param("id"), data); err != nil {
		return errors.Wrap(err, "resetting password")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Password updated."})
}

func (api *studentApi) monthlyView(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	stu, err := api.svc.GetByID(rctx, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	view, err := api.attSvc.StudentMonthlyView(rctx, stu.ID, ctx.Param("month"))
	if err != nil {
		return errors.Wrap(err, "building monthly view")
	}
	return ctx.JSON(http.StatusOK, view)
}

// Downloads

type SuccessResponse struct {
	Success string `json:"success"`
}

func attachment(ctx echo.Context, filename string) {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
}

func sendCSV(ctx echo.Context, filename string, rows [][]string) error {
	attachment(ctx, filename)
	return ctx.Blob(http.StatusOK, export.ContentTypeCSV, export.EncodeCSV(rows))
}

func sendXLSX(ctx echo.Context, filename, sheet string, rows [][]string) error {
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, sheet, rows); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	attachment(ctx, filename)
	return ctx.Blob(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
